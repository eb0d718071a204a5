package app

import (
	"context"
	"errors"
	"strings"

	"github.com/artvista/marketplace/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ArtworkRepo
}

func NewService(repo ArtworkRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Artwork, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Artwork{}, ErrInvalidInput
	}
	art, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Artwork{}, err
	}
	if !ok {
		return domain.Artwork{}, ErrNotFound
	}
	return art, nil
}

// List filters by exact category (empty matches all) and a case-insensitive
// substring over title and artist name.
func (s *Service) List(ctx context.Context, category, query string) ([]domain.Artwork, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Artwork, 0, len(all))
	for _, art := range all {
		if category != "" && art.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(art.Title), query) &&
			!strings.Contains(strings.ToLower(art.ArtistName), query) {
			continue
		}
		out = append(out, art)
	}
	return out, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Categories(ctx)
}
