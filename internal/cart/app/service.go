package app

import (
	"context"

	"github.com/artvista/marketplace/internal/cart/domain"
	"github.com/artvista/marketplace/internal/notify"
)

// Service applies cart mutations and writes the snapshot back after every
// one of them, so the persisted record always mirrors the aggregate.
type Service struct {
	repo   CartRepo
	events notify.Sink
}

func NewService(repo CartRepo, events notify.Sink) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Get(ctx context.Context) (domain.Cart, error) {
	return s.repo.Load(ctx)
}

func (s *Service) Totals(ctx context.Context) (domain.Totals, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Totals{}, err
	}
	return cart.Totals(), nil
}

// Add merges the item into the cart. Quantity on the input is ignored; a
// repeat add increments by one.
func (s *Service) Add(ctx context.Context, item domain.Line) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}

	merged := cart.Add(item)
	if err := s.repo.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}

	kind := notify.CartItemAdded
	if merged {
		kind = notify.CartItemUpdated
	}
	notify.Publish(ctx, s.events, notify.Event{Kind: kind, Subject: item.Title})
	return cart, nil
}

func (s *Service) Remove(ctx context.Context, productID string) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}

	removed, _ := cart.Find(productID)
	if !cart.Remove(productID) {
		return cart, nil
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}

	notify.Publish(ctx, s.events, notify.Event{Kind: notify.CartItemRemoved, Subject: removed.Title})
	return cart, nil
}

func (s *Service) SetQuantity(ctx context.Context, productID string, quantity int64) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}

	target, _ := cart.Find(productID)
	if !cart.SetQuantity(productID, quantity) {
		return cart, nil
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return domain.Cart{}, err
	}

	kind := notify.CartItemUpdated
	if quantity < 1 {
		kind = notify.CartItemRemoved
	}
	notify.Publish(ctx, s.events, notify.Event{Kind: kind, Subject: target.Title})
	return cart, nil
}

func (s *Service) Clear(ctx context.Context) error {
	var empty domain.Cart
	if err := s.repo.Save(ctx, empty); err != nil {
		return err
	}
	notify.Publish(ctx, s.events, notify.Event{Kind: notify.CartCleared})
	return nil
}
