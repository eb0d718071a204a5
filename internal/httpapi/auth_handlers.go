package httpapi

import (
	"net/http"

	identityapp "github.com/artvista/marketplace/internal/identity/app"
	"github.com/artvista/marketplace/internal/identity/domain"
	"github.com/artvista/marketplace/pkg/httpx"
)

type identityResponse struct {
	Identity *domain.Identity `json:"identity"`
}

func identityJSON(w http.ResponseWriter, status int, id domain.Identity) {
	httpx.JSON(w, status, identityResponse{Identity: &id})
}

func (s *Server) handleRestoreSession(w http.ResponseWriter, r *http.Request) {
	id, ok, err := s.sessionManager(r.Context()).Restore(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		httpx.JSON(w, http.StatusOK, identityResponse{})
		return
	}
	identityJSON(w, http.StatusOK, id)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	mgr := s.sessionManager(r.Context())
	// Restore first so logout of an authenticated session is observable
	// to the notification sink.
	_, _, _ = mgr.Restore(r.Context())
	if err := mgr.Logout(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	id, err := s.sessionManager(r.Context()).LoginWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	identityJSON(w, http.StatusOK, id)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		Role            string `json:"role"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	id, err := s.sessionManager(r.Context()).SignupWithPassword(r.Context(),
		req.Name, req.Email, req.Password, req.ConfirmPassword, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, err)
		return
	}
	identityJSON(w, http.StatusCreated, id)
}

func (s *Server) handleOTPRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	if err := s.sessionManager(r.Context()).RequestPhoneChallenge(r.Context(), req.Phone); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	if err := s.sessionManager(r.Context()).VerifyPhoneChallenge(r.Context(), req.Phone, req.Code); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePhoneLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	id, err := s.sessionManager(r.Context()).CompletePhoneLogin(r.Context(), req.Phone)
	if err != nil {
		s.writeError(w, err)
		return
	}
	identityJSON(w, http.StatusOK, id)
}

func (s *Server) handlePhoneSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Role  string `json:"role"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	id, err := s.sessionManager(r.Context()).CompletePhoneSignup(r.Context(),
		req.Name, req.Phone, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, err)
		return
	}
	identityJSON(w, http.StatusCreated, id)
}

func (s *Server) handleOAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Avatar   string `json:"avatar"`
		Role     string `json:"role"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	id, err := s.sessionManager(r.Context()).LoginWithOAuth(r.Context(), identityapp.Assertion{
		Provider: req.Provider,
		Email:    req.Email,
		Name:     req.Name,
		Avatar:   req.Avatar,
	}, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, err)
		return
	}
	identityJSON(w, http.StatusOK, id)
}
