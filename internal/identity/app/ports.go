package app

import (
	"context"
	"time"

	"github.com/artvista/marketplace/internal/identity/domain"
)

// Directory is the registry of known identities. Email lookups are
// case-insensitive; implementations own the index maintenance.
type Directory interface {
	ByID(ctx context.Context, id string) (domain.Identity, bool, error)
	ByEmail(ctx context.Context, email string) (domain.Identity, bool, error)
	ByPhone(ctx context.Context, phone string) (domain.Identity, bool, error)
	// Create registers a new identity. passwordHash may be empty for
	// phone- and OAuth-born identities.
	Create(ctx context.Context, id domain.Identity, passwordHash string) error
	// PasswordHash returns the stored hash, or "" when the identity has
	// no local credential.
	PasswordHash(ctx context.Context, id string) (string, error)
}

// SessionStore persists the current identity across restarts. Load must
// recover from a corrupt record by purging it and reporting no session.
type SessionStore interface {
	Load(ctx context.Context) (domain.Identity, bool, error)
	Save(ctx context.Context, id domain.Identity) error
	Clear(ctx context.Context) error
}

// ChallengeStore holds live phone challenges and the short-lived
// verified markers produced by a successful code check.
type ChallengeStore interface {
	Get(ctx context.Context, phone string) (domain.Challenge, bool, error)
	Put(ctx context.Context, ch domain.Challenge) error
	Delete(ctx context.Context, phone string) error

	MarkVerified(ctx context.Context, phone string, until time.Time) error
	Verified(ctx context.Context, phone string, now time.Time) (bool, error)
	ClearVerified(ctx context.Context, phone string) error
}

// CodeSender delivers a one-time code to a phone number.
type CodeSender interface {
	Send(ctx context.Context, phone, code string) error
}

// Assertion is a verified external identity handed over by an OAuth
// provider. The exchange itself happens outside this service.
type Assertion struct {
	Provider string
	Email    string
	Name     string
	Avatar   string
}
