package domain

import "time"

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Artwork is a read-only catalog record. Price is nil for pieces that are
// display-only; ForSale tracks the artist's listing choice independently.
type Artwork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *Money    `json:"price,omitempty"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	ForSale     bool      `json:"forSale"`
	ArtistID    string    `json:"artistId"`
	ArtistName  string    `json:"artistName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
