package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/artvista/marketplace/internal/checkout/domain"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNotForSale    = errors.New("artwork is not for sale")
	ErrMixedCurrency = errors.New("cart mixes currencies")
)

type CartReader interface {
	Lines(ctx context.Context) ([]CartItem, error)
}

type CartItem struct {
	ProductID string
	Quantity  int64
}

type CatalogReader interface {
	Artwork(ctx context.Context, productID string) (Artwork, error)
}

type Artwork struct {
	ID       string
	Title    string
	Currency string
	Amount   int64
	ForSale  bool
}

// Service prices the cart against the catalog. Catalog prices are
// authoritative; the denormalized prices on cart lines are display-only.
type Service struct {
	cart    CartReader
	catalog CatalogReader

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		cart:          cart,
		catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	items, err := s.cart.Lines(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			art, err := s.catalog.Artwork(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("artwork %s: %w", it.ProductID, err)
			}
			if !art.ForSale {
				return fmt.Errorf("artwork %s: %w", it.ProductID, ErrNotForSale)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: art.ID,
				Title:     art.Title,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{Currency: art.Currency, Amount: art.Amount},
				LineTotal: domain.Money{Currency: art.Currency, Amount: art.Amount * it.Quantity},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	currency := lines[0].LineTotal.Currency
	var total int64
	for _, line := range lines {
		if line.LineTotal.Currency != currency {
			return domain.Quote{}, ErrMixedCurrency
		}
		total += line.LineTotal.Amount
	}

	return domain.Quote{
		Lines: lines,
		Total: domain.Money{Currency: currency, Amount: total},
	}, nil
}
