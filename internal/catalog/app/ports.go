package app

import (
	"context"

	"github.com/artvista/marketplace/internal/catalog/domain"
)

type ArtworkRepo interface {
	Get(ctx context.Context, id string) (domain.Artwork, bool, error)
	List(ctx context.Context) ([]domain.Artwork, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}
