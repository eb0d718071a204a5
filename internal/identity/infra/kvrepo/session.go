package kvrepo

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/artvista/marketplace/internal/identity/domain"
	"github.com/artvista/marketplace/pkg/kvstore"
)

const sessionKey = "session"

// SessionStore persists the current identity under a fixed key. Absence
// means anonymous; a record that fails to parse is purged and treated as
// anonymous.
type SessionStore struct {
	store kvstore.Store
	log   *slog.Logger
}

func NewSessionStore(store kvstore.Store, log *slog.Logger) *SessionStore {
	return &SessionStore{store: store, log: log}
}

func (s *SessionStore) Load(ctx context.Context) (domain.Identity, bool, error) {
	b, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return domain.Identity{}, false, nil
		}
		return domain.Identity{}, false, err
	}

	var id domain.Identity
	if err := json.Unmarshal(b, &id); err != nil || id.IsZero() {
		s.log.Warn("stored session corrupt, purging", slog.Any("err", err))
		_ = s.store.Delete(ctx, sessionKey)
		return domain.Identity{}, false, nil
	}
	return id, true, nil
}

func (s *SessionStore) Save(ctx context.Context, id domain.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey, b)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, sessionKey)
}
