package domain

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Line is one distinct artwork in the cart. Product fields are denormalized
// from the catalog at add time so the cart renders without a catalog read.
type Line struct {
	ProductID  string `json:"productId"`
	Title      string `json:"title"`
	UnitPrice  Money  `json:"unitPrice"`
	ImageURL   string `json:"imageUrl"`
	SellerID   string `json:"sellerId"`
	SellerName string `json:"sellerName"`
	Quantity   int64  `json:"quantity"`
}

// Cart holds lines in insertion order. Product IDs are unique across lines
// and every quantity is at least 1.
type Cart struct {
	Lines []Line `json:"lines"`
}

type Totals struct {
	ItemCount int64 `json:"itemCount"`
	Total     Money `json:"total"`
}

// Add merges into an existing line or appends a new one with quantity 1.
func (c *Cart) Add(item Line) (merged bool) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == item.ProductID {
			c.Lines[i].Quantity++
			return true
		}
	}
	item.Quantity = 1
	c.Lines = append(c.Lines, item)
	return false
}

// Remove drops the line for productID. Absent IDs are a no-op.
func (c *Cart) Remove(productID string) (removed bool) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity overwrites a line's quantity. Anything below 1 removes the
// line; an absent ID is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int64) (changed bool) {
	if quantity < 1 {
		return c.Remove(productID)
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// Totals derives the item count and price sum. The currency is taken from
// the first line; an empty cart totals to the zero Money.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, l := range c.Lines {
		t.ItemCount += l.Quantity
		t.Total.Amount += l.UnitPrice.Amount * l.Quantity
		if t.Total.Currency == "" {
			t.Total.Currency = l.UnitPrice.Currency
		}
	}
	return t
}

func (c *Cart) Find(productID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}
