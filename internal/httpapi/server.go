// Package httpapi exposes the storefront core over HTTP/JSON for the
// browser client. Each client gets its own session and cart scope, keyed
// by a cookie, mirroring how the records would live in that browser's
// local storage.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	cartapp "github.com/artvista/marketplace/internal/cart/app"
	cartkv "github.com/artvista/marketplace/internal/cart/infra/kvrepo"
	catalogapp "github.com/artvista/marketplace/internal/catalog/app"
	checkoutapp "github.com/artvista/marketplace/internal/checkout/app"
	"github.com/artvista/marketplace/internal/checkout/infra/adapter"
	identityapp "github.com/artvista/marketplace/internal/identity/app"
	identitykv "github.com/artvista/marketplace/internal/identity/infra/kvrepo"
	"github.com/artvista/marketplace/internal/notify"
	"github.com/artvista/marketplace/pkg/kvstore"
)

const clientCookie = "artvista_client"

type ctxKey int

const clientIDKey ctxKey = iota

type Server struct {
	log   *slog.Logger
	store kvstore.Store

	directory  *identitykv.Directory
	challenges *identitykv.ChallengeStore
	sender     identityapp.CodeSender
	events     notify.Sink

	catalog *catalogapp.Service

	otpTTL     time.Duration
	simLatency time.Duration
	corsOrigin string
}

type Options struct {
	Log        *slog.Logger
	Store      kvstore.Store
	Directory  *identitykv.Directory
	Sender     identityapp.CodeSender
	Events     notify.Sink
	Catalog    *catalogapp.Service
	OTPTTL     time.Duration
	SimLatency time.Duration
	CORSOrigin string
}

func NewServer(opts Options) *Server {
	return &Server{
		log:        opts.Log,
		store:      opts.Store,
		directory:  opts.Directory,
		challenges: identitykv.NewChallengeStore(opts.Store, opts.Log),
		sender:     opts.Sender,
		events:     opts.Events,
		catalog:    opts.Catalog,
		otpTTL:     opts.OTPTTL,
		simLatency: opts.SimLatency,
		corsOrigin: opts.CORSOrigin,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Use(s.withClientScope)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleRestoreSession)
			r.Delete("/", s.handleLogout)
			r.Post("/login", s.handleLogin)
			r.Post("/signup", s.handleSignup)
			r.Post("/otp/request", s.handleOTPRequest)
			r.Post("/otp/verify", s.handleOTPVerify)
			r.Post("/phone/login", s.handlePhoneLogin)
			r.Post("/phone/signup", s.handlePhoneSignup)
			r.Post("/oauth", s.handleOAuth)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleListArtworks)
			r.Get("/categories", s.handleListCategories)
			r.Get("/{id}", s.handleGetArtwork)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Get("/totals", s.handleCartTotals)
			r.Post("/items", s.handleAddItem)
			r.Put("/items/{id}", s.handleSetQuantity)
			r.Delete("/items/{id}", s.handleRemoveItem)
		})

		r.Post("/checkout/quote", s.handleQuote)
	})

	return r
}

// withClientScope pins every request to a stable client ID so session and
// cart records are private to one browser, the way localStorage would be.
func (s *Server) withClientScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(clientCookie); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     clientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), clientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

// clientStore scopes the shared backend to one client's records.
func (s *Server) clientStore(ctx context.Context) kvstore.Store {
	return kvstore.Prefixed(s.store, "client:"+clientID(ctx)+":")
}

func (s *Server) sessionManager(ctx context.Context) *identityapp.Manager {
	sessions := identitykv.NewSessionStore(s.clientStore(ctx), s.log)
	return identityapp.NewManager(s.directory, sessions, s.challenges, s.sender, identityapp.Options{
		Events:  s.events,
		OTPTTL:  s.otpTTL,
		Latency: s.simLatency,
	})
}

func (s *Server) cartService(ctx context.Context) *cartapp.Service {
	repo := cartkv.NewCartRepo(s.clientStore(ctx), s.log)
	return cartapp.NewService(repo, s.events)
}

func (s *Server) checkoutService(ctx context.Context) *checkoutapp.Service {
	return checkoutapp.NewService(
		adapter.NewCartServiceReader(s.cartService(ctx)),
		adapter.NewCatalogServiceReader(s.catalog),
		10,
	)
}
