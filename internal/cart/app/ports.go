package app

import (
	"context"

	"github.com/artvista/marketplace/internal/cart/domain"
)

// CartRepo persists the full cart snapshot. Load must recover from a
// corrupt snapshot by resetting to an empty cart.
type CartRepo interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}
