// Package kvstore provides the small key-value capability the storefront
// persists its session and cart records through. Backends share last-write-wins
// semantics; values are opaque bytes.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is idempotent. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Prefixed returns a view of s with every key prefixed, so independent
// owners (e.g. browser clients) can share one backend without colliding.
func Prefixed(s Store, prefix string) Store {
	return prefixed{s: s, prefix: prefix}
}

type prefixed struct {
	s      Store
	prefix string
}

func (p prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.s.Get(ctx, p.prefix+key)
}

func (p prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.s.Set(ctx, p.prefix+key, value)
}

func (p prefixed) Delete(ctx context.Context, key string) error {
	return p.s.Delete(ctx, p.prefix+key)
}
