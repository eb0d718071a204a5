package app

import (
	"context"
	"testing"

	"github.com/artvista/marketplace/internal/catalog/domain"
)

type fakeRepo struct {
	artworks []domain.Artwork
}

func (f fakeRepo) Get(ctx context.Context, id string) (domain.Artwork, bool, error) {
	for _, a := range f.artworks {
		if a.ID == id {
			return a, true, nil
		}
	}
	return domain.Artwork{}, false, nil
}

func (f fakeRepo) List(ctx context.Context) ([]domain.Artwork, error) {
	return f.artworks, nil
}

func (f fakeRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func testService() *Service {
	return NewService(fakeRepo{artworks: []domain.Artwork{
		{ID: "1", Title: "Ethereal Dreams", Category: "Paintings", ArtistName: "Jane Artist"},
		{ID: "2", Title: "Urban Perspective", Category: "Photography", ArtistName: "John Artist"},
		{ID: "3", Title: "Modern Portrait", Category: "Paintings", ArtistName: "Jane Artist"},
	}})
}

func TestGet(t *testing.T) {
	svc := testService()

	t.Run("blank id -> invalid", func(t *testing.T) {
		if _, err := svc.Get(context.Background(), "   "); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		if _, err := svc.Get(context.Background(), "99"); err != ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("known id", func(t *testing.T) {
		art, err := svc.Get(context.Background(), "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if art.Title != "Urban Perspective" {
			t.Fatalf("got %q", art.Title)
		}
	})
}

func TestListFilters(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	t.Run("no filter returns all", func(t *testing.T) {
		got, err := svc.List(ctx, "", "")
		if err != nil || len(got) != 3 {
			t.Fatalf("got %d, err %v", len(got), err)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		got, err := svc.List(ctx, "Paintings", "")
		if err != nil || len(got) != 2 {
			t.Fatalf("got %d, err %v", len(got), err)
		}
	})

	t.Run("query matches title, case-insensitive", func(t *testing.T) {
		got, err := svc.List(ctx, "", "URBAN")
		if err != nil || len(got) != 1 || got[0].ID != "2" {
			t.Fatalf("got %v, err %v", got, err)
		}
	})

	t.Run("query matches artist name", func(t *testing.T) {
		got, err := svc.List(ctx, "", "jane")
		if err != nil || len(got) != 2 {
			t.Fatalf("got %d, err %v", len(got), err)
		}
	})

	t.Run("category and query compose", func(t *testing.T) {
		got, err := svc.List(ctx, "Paintings", "portrait")
		if err != nil || len(got) != 1 || got[0].ID != "3" {
			t.Fatalf("got %v, err %v", got, err)
		}
	})
}
