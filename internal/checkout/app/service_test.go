package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	items []CartItem
}

func (f fakeCart) Lines(ctx context.Context) ([]CartItem, error) { return f.items, nil }

type fakeCatalog struct {
	artworks map[string]Artwork
}

func (f fakeCatalog) Artwork(ctx context.Context, id string) (Artwork, error) {
	a, ok := f.artworks[id]
	if !ok {
		return Artwork{}, errors.New("not found")
	}
	return a, nil
}

func catalog() fakeCatalog {
	return fakeCatalog{artworks: map[string]Artwork{
		"p1": {ID: "p1", Title: "Ethereal Dreams", Currency: "USD", Amount: 120000, ForSale: true},
		"p2": {ID: "p2", Title: "Urban Perspective", Currency: "USD", Amount: 85000, ForSale: true},
		"p3": {ID: "p3", Title: "Serenity", ForSale: false},
		"p4": {ID: "p4", Title: "Imported Piece", Currency: "EUR", Amount: 50000, ForSale: true},
	}}
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		svc := NewService(fakeCart{}, catalog(), 4)
		_, err := svc.Quote(ctx)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("totals multiply quantity by catalog price", func(t *testing.T) {
		svc := NewService(fakeCart{items: []CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		}}, catalog(), 4)

		quote, err := svc.Quote(ctx)
		require.NoError(t, err)
		require.Len(t, quote.Lines, 2)
		assert.Equal(t, int64(240000), quote.Lines[0].LineTotal.Amount)
		assert.Equal(t, int64(2*120000+85000), quote.Total.Amount)
		assert.Equal(t, "USD", quote.Total.Currency)
	})

	t.Run("line order follows the cart", func(t *testing.T) {
		svc := NewService(fakeCart{items: []CartItem{
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p1", Quantity: 1},
		}}, catalog(), 1)

		quote, err := svc.Quote(ctx)
		require.NoError(t, err)
		assert.Equal(t, "p2", quote.Lines[0].ProductID)
		assert.Equal(t, "p1", quote.Lines[1].ProductID)
	})

	t.Run("not-for-sale artwork fails the quote", func(t *testing.T) {
		svc := NewService(fakeCart{items: []CartItem{
			{ProductID: "p3", Quantity: 1},
		}}, catalog(), 4)

		_, err := svc.Quote(ctx)
		assert.ErrorIs(t, err, ErrNotForSale)
	})

	t.Run("unknown artwork fails the quote", func(t *testing.T) {
		svc := NewService(fakeCart{items: []CartItem{
			{ProductID: "ghost", Quantity: 1},
		}}, catalog(), 4)

		_, err := svc.Quote(ctx)
		assert.Error(t, err)
	})

	t.Run("zero quantity fails the quote", func(t *testing.T) {
		svc := NewService(fakeCart{items: []CartItem{
			{ProductID: "p1", Quantity: 0},
		}}, catalog(), 4)

		_, err := svc.Quote(ctx)
		assert.Error(t, err)
	})

	t.Run("mixed currencies are rejected", func(t *testing.T) {
		svc := NewService(fakeCart{items: []CartItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p4", Quantity: 1},
		}}, catalog(), 4)

		_, err := svc.Quote(ctx)
		assert.ErrorIs(t, err, ErrMixedCurrency)
	})
}
