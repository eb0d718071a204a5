package httpapi

import (
	"net/http"

	"github.com/artvista/marketplace/pkg/httpx"
)

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.checkoutService(r.Context()).Quote(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}
