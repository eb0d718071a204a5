package adapter

import (
	"context"

	cartapp "github.com/artvista/marketplace/internal/cart/app"
	"github.com/artvista/marketplace/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Lines(ctx context.Context) ([]app.CartItem, error) {
	cart, err := r.svc.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]app.CartItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, app.CartItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return items, nil
}
