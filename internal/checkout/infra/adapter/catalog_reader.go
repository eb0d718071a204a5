package adapter

import (
	"context"
	"fmt"

	catalogapp "github.com/artvista/marketplace/internal/catalog/app"
	"github.com/artvista/marketplace/internal/checkout/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) Artwork(ctx context.Context, productID string) (app.Artwork, error) {
	art, err := r.svc.Get(ctx, productID)
	if err != nil {
		return app.Artwork{}, err
	}

	out := app.Artwork{
		ID:      art.ID,
		Title:   art.Title,
		ForSale: art.ForSale,
	}
	// An unpriced piece cannot be quoted regardless of its listing flag.
	if art.Price == nil {
		if art.ForSale {
			return app.Artwork{}, fmt.Errorf("artwork %s listed for sale without a price", art.ID)
		}
		return out, nil
	}
	out.Currency = art.Price.Currency
	out.Amount = art.Price.Amount
	return out, nil
}
