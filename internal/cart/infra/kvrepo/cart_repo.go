package kvrepo

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/artvista/marketplace/internal/cart/domain"
	"github.com/artvista/marketplace/pkg/kvstore"
)

const cartKey = "cart"

// CartRepo stores the cart as one snapshot record. Absence means empty; a
// snapshot that fails to parse is purged and reported as empty.
type CartRepo struct {
	store kvstore.Store
	log   *slog.Logger
}

func NewCartRepo(store kvstore.Store, log *slog.Logger) *CartRepo {
	return &CartRepo{store: store, log: log}
}

func (r *CartRepo) Load(ctx context.Context) (domain.Cart, error) {
	b, err := r.store.Get(ctx, cartKey)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return domain.Cart{}, nil
		}
		return domain.Cart{}, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(b, &cart); err != nil {
		r.log.Warn("stored cart corrupt, resetting", slog.Any("err", err))
		_ = r.store.Delete(ctx, cartKey)
		return domain.Cart{}, nil
	}
	return cart, nil
}

func (r *CartRepo) Save(ctx context.Context, cart domain.Cart) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, cartKey, b)
}
