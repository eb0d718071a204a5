package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func usd(amount int64) Money { return Money{Currency: "USD", Amount: amount} }

func line(id string, price int64) Line {
	return Line{ProductID: id, Title: "art-" + id, UnitPrice: usd(price)}
}

func TestAddMergesByProductID(t *testing.T) {
	var c Cart

	for i := 0; i < 3; i++ {
		c.Add(line("p1", 1200))
	}
	c.Add(line("p2", 850))

	assert.Len(t, c.Lines, 2)
	got, ok := c.Find("p1")
	assert.True(t, ok)
	assert.Equal(t, int64(3), got.Quantity)

	// Insertion order preserved.
	assert.Equal(t, "p1", c.Lines[0].ProductID)
	assert.Equal(t, "p2", c.Lines[1].ProductID)
}

func TestSetQuantity(t *testing.T) {
	t.Run("zero and negative remove the line", func(t *testing.T) {
		for _, q := range []int64{0, -1} {
			var c Cart
			c.Add(line("p1", 100))
			assert.True(t, c.SetQuantity("p1", q))
			assert.Empty(t, c.Lines)
		}
	})

	t.Run("overwrites existing quantity", func(t *testing.T) {
		var c Cart
		c.Add(line("p1", 100))
		assert.True(t, c.SetQuantity("p1", 5))
		got, _ := c.Find("p1")
		assert.Equal(t, int64(5), got.Quantity)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		var c Cart
		c.Add(line("p1", 100))
		assert.False(t, c.SetQuantity("ghost", 5))
		assert.Len(t, c.Lines, 1)
	})
}

func TestRemove(t *testing.T) {
	var c Cart
	c.Add(line("p1", 100))
	c.Add(line("p2", 200))

	assert.True(t, c.Remove("p1"))
	assert.False(t, c.Remove("p1"))
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ProductID)
}

func TestTotals(t *testing.T) {
	var c Cart
	assert.Equal(t, Totals{}, c.Totals(), "empty cart totals to zero")

	c.Add(line("p1", 1200))
	c.Add(line("p1", 1200))
	c.Add(line("p2", 850))
	c.SetQuantity("p2", 3)

	got := c.Totals()
	assert.Equal(t, int64(5), got.ItemCount)
	assert.Equal(t, usd(2*1200+3*850), got.Total)

	c.Clear()
	assert.Equal(t, Totals{}, c.Totals())
}
