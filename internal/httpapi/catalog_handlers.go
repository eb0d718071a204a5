package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artvista/marketplace/internal/catalog/domain"
	"github.com/artvista/marketplace/pkg/httpx"
)

func (s *Server) handleListArtworks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	artworks, err := s.catalog.List(r.Context(), q.Get("category"), q.Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Artworks []domain.Artwork `json:"artworks"`
	}{Artworks: artworks})
}

func (s *Server) handleGetArtwork(w http.ResponseWriter, r *http.Request) {
	art, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, art)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Categories []domain.Category `json:"categories"`
	}{Categories: categories})
}
