// Package seed ships the demo dataset the storefront runs on until a real
// catalog service exists: artworks, categories and the seed identities.
package seed

import (
	_ "embed"
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/artvista/marketplace/internal/catalog/domain"
	identitydomain "github.com/artvista/marketplace/internal/identity/domain"
)

//go:embed seed.yaml
var seedYAML []byte

const currency = "USD"

type seedUser struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Email     string    `yaml:"email"`
	Phone     string    `yaml:"phone"`
	Role      string    `yaml:"role"`
	Avatar    string    `yaml:"avatar"`
	CreatedAt time.Time `yaml:"createdAt"`
}

type seedArtwork struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	PriceCents  *int64    `yaml:"priceCents"`
	ImageURL    string    `yaml:"imageUrl"`
	Category    string    `yaml:"category"`
	ForSale     bool      `yaml:"forSale"`
	ArtistID    string    `yaml:"artistId"`
	ArtistName  string    `yaml:"artistName"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

type seedFile struct {
	Categories []domain.Category `yaml:"categories"`
	Users      []seedUser        `yaml:"users"`
	Artworks   []seedArtwork     `yaml:"artworks"`
}

// Repo serves the embedded dataset. It satisfies the catalog's ArtworkRepo
// and carries the identities the directory is seeded with.
type Repo struct {
	artworks   []domain.Artwork
	categories []domain.Category
	identities []identitydomain.Identity
}

func Load() (*Repo, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	r := &Repo{categories: f.Categories}
	for _, a := range f.Artworks {
		art := domain.Artwork{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			ImageURL:    a.ImageURL,
			Category:    a.Category,
			ForSale:     a.ForSale,
			ArtistID:    a.ArtistID,
			ArtistName:  a.ArtistName,
			CreatedAt:   a.CreatedAt,
		}
		if a.PriceCents != nil {
			art.Price = &domain.Money{Currency: currency, Amount: *a.PriceCents}
		}
		r.artworks = append(r.artworks, art)
	}
	for _, u := range f.Users {
		role := identitydomain.Role(u.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("seed user %s: unknown role %q", u.ID, u.Role)
		}
		r.identities = append(r.identities, identitydomain.Identity{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      role,
			Avatar:    u.Avatar,
			CreatedAt: u.CreatedAt,
		})
	}
	return r, nil
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Artwork, bool, error) {
	for _, a := range r.artworks {
		if a.ID == id {
			return a, true, nil
		}
	}
	return domain.Artwork{}, false, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Artwork, error) {
	out := make([]domain.Artwork, len(r.artworks))
	copy(out, r.artworks)
	return out, nil
}

func (r *Repo) Categories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// Identities returns the users the identity directory is seeded with.
func (r *Repo) Identities() []identitydomain.Identity {
	out := make([]identitydomain.Identity, len(r.identities))
	copy(out, r.identities)
	return out
}
