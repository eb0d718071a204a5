package kvrepo

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/artvista/marketplace/internal/identity/domain"
	"github.com/artvista/marketplace/pkg/kvstore"
)

const directoryKey = "identity_directory"

type directoryState struct {
	ByID      map[string]domain.Identity `json:"byId"`
	IDByEmail map[string]string          `json:"idByEmail"`
	IDByPhone map[string]string          `json:"idByPhone"`
	Secrets   map[string]string          `json:"secrets"`
}

func newDirectoryState() directoryState {
	return directoryState{
		ByID:      map[string]domain.Identity{},
		IDByEmail: map[string]string{},
		IDByPhone: map[string]string{},
		Secrets:   map[string]string{},
	}
}

// Directory keeps the identity registry as a single record in the store,
// with email and phone indexes maintained alongside.
type Directory struct {
	mu    sync.Mutex
	store kvstore.Store
	log   *slog.Logger
}

func NewDirectory(store kvstore.Store, log *slog.Logger) *Directory {
	return &Directory{store: store, log: log}
}

func (d *Directory) ByID(ctx context.Context, id string) (domain.Identity, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.load(ctx)
	if err != nil {
		return domain.Identity{}, false, err
	}
	identity, ok := s.ByID[id]
	return identity, ok, nil
}

func (d *Directory) ByEmail(ctx context.Context, email string) (domain.Identity, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.load(ctx)
	if err != nil {
		return domain.Identity{}, false, err
	}
	id, ok := s.IDByEmail[strings.ToLower(email)]
	if !ok {
		return domain.Identity{}, false, nil
	}
	identity, ok := s.ByID[id]
	return identity, ok, nil
}

func (d *Directory) ByPhone(ctx context.Context, phone string) (domain.Identity, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.load(ctx)
	if err != nil {
		return domain.Identity{}, false, err
	}
	id, ok := s.IDByPhone[phone]
	if !ok {
		return domain.Identity{}, false, nil
	}
	identity, ok := s.ByID[id]
	return identity, ok, nil
}

func (d *Directory) Create(ctx context.Context, identity domain.Identity, passwordHash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.load(ctx)
	if err != nil {
		return err
	}

	s.ByID[identity.ID] = identity
	if identity.Email != "" {
		s.IDByEmail[strings.ToLower(identity.Email)] = identity.ID
	}
	if identity.Phone != "" {
		s.IDByPhone[identity.Phone] = identity.ID
	}
	if passwordHash != "" {
		s.Secrets[identity.ID] = passwordHash
	}
	return d.save(ctx, s)
}

func (d *Directory) PasswordHash(ctx context.Context, id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.load(ctx)
	if err != nil {
		return "", err
	}
	return s.Secrets[id], nil
}

// Seed registers identities that are not present yet. Existing records win,
// so restarts do not clobber signups.
func (d *Directory) Seed(ctx context.Context, identities []domain.Identity) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.load(ctx)
	if err != nil {
		return err
	}

	changed := false
	for _, identity := range identities {
		if _, exists := s.ByID[identity.ID]; exists {
			continue
		}
		if identity.Email != "" {
			if _, taken := s.IDByEmail[strings.ToLower(identity.Email)]; taken {
				continue
			}
		}
		s.ByID[identity.ID] = identity
		if identity.Email != "" {
			s.IDByEmail[strings.ToLower(identity.Email)] = identity.ID
		}
		if identity.Phone != "" {
			s.IDByPhone[identity.Phone] = identity.ID
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return d.save(ctx, s)
}

func (d *Directory) load(ctx context.Context) (directoryState, error) {
	b, err := d.store.Get(ctx, directoryKey)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return newDirectoryState(), nil
		}
		return directoryState{}, err
	}

	var s directoryState
	if err := json.Unmarshal(b, &s); err != nil {
		d.log.Warn("identity directory record corrupt, resetting",
			slog.Any("err", err))
		_ = d.store.Delete(ctx, directoryKey)
		return newDirectoryState(), nil
	}
	if s.ByID == nil {
		s.ByID = map[string]domain.Identity{}
	}
	if s.IDByEmail == nil {
		s.IDByEmail = map[string]string{}
	}
	if s.IDByPhone == nil {
		s.IDByPhone = map[string]string{}
	}
	if s.Secrets == nil {
		s.Secrets = map[string]string{}
	}
	return s, nil
}

func (d *Directory) save(ctx context.Context, s directoryState) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return d.store.Set(ctx, directoryKey, b)
}
