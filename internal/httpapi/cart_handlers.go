package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdomain "github.com/artvista/marketplace/internal/cart/domain"
	checkoutapp "github.com/artvista/marketplace/internal/checkout/app"
	"github.com/artvista/marketplace/pkg/httpx"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartService(r.Context()).Get(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (s *Server) handleCartTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.cartService(r.Context()).Totals(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

// handleAddItem resolves the artwork in the catalog and denormalizes it
// onto the cart line, so the client only ever sends a product ID.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	art, err := s.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !art.ForSale || art.Price == nil {
		s.writeError(w, checkoutapp.ErrNotForSale)
		return
	}

	cart, err := s.cartService(r.Context()).Add(r.Context(), cartdomain.Line{
		ProductID:  art.ID,
		Title:      art.Title,
		UnitPrice:  cartdomain.Money{Currency: art.Price.Currency, Amount: art.Price.Amount},
		ImageURL:   art.ImageURL,
		SellerID:   art.ArtistID,
		SellerName: art.ArtistName,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int64 `json:"quantity"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	cart, err := s.cartService(r.Context()).SetQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartService(r.Context()).Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cart)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cartService(r.Context()).Clear(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
