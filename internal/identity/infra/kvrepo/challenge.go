package kvrepo

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/artvista/marketplace/internal/identity/domain"
	"github.com/artvista/marketplace/pkg/kvstore"
)

const (
	challengeKeyPrefix = "otp_challenge:"
	verifiedKeyPrefix  = "otp_verified:"
)

type verifiedMarker struct {
	Phone string    `json:"phone"`
	Until time.Time `json:"until"`
}

// ChallengeStore keeps one live challenge per phone plus the marker left
// behind by a successful verification.
type ChallengeStore struct {
	store kvstore.Store
	log   *slog.Logger
}

func NewChallengeStore(store kvstore.Store, log *slog.Logger) *ChallengeStore {
	return &ChallengeStore{store: store, log: log}
}

func (c *ChallengeStore) Get(ctx context.Context, phone string) (domain.Challenge, bool, error) {
	b, err := c.store.Get(ctx, challengeKeyPrefix+phone)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return domain.Challenge{}, false, nil
		}
		return domain.Challenge{}, false, err
	}

	var ch domain.Challenge
	if err := json.Unmarshal(b, &ch); err != nil {
		c.log.Warn("stored challenge corrupt, purging", slog.Any("err", err))
		_ = c.store.Delete(ctx, challengeKeyPrefix+phone)
		return domain.Challenge{}, false, nil
	}
	return ch, true, nil
}

func (c *ChallengeStore) Put(ctx context.Context, ch domain.Challenge) error {
	b, err := json.Marshal(ch)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, challengeKeyPrefix+ch.Phone, b)
}

func (c *ChallengeStore) Delete(ctx context.Context, phone string) error {
	return c.store.Delete(ctx, challengeKeyPrefix+phone)
}

func (c *ChallengeStore) MarkVerified(ctx context.Context, phone string, until time.Time) error {
	b, err := json.Marshal(verifiedMarker{Phone: phone, Until: until})
	if err != nil {
		return err
	}
	return c.store.Set(ctx, verifiedKeyPrefix+phone, b)
}

func (c *ChallengeStore) Verified(ctx context.Context, phone string, now time.Time) (bool, error) {
	b, err := c.store.Get(ctx, verifiedKeyPrefix+phone)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return false, nil
		}
		return false, err
	}

	var m verifiedMarker
	if err := json.Unmarshal(b, &m); err != nil {
		_ = c.store.Delete(ctx, verifiedKeyPrefix+phone)
		return false, nil
	}
	if now.After(m.Until) {
		_ = c.store.Delete(ctx, verifiedKeyPrefix+phone)
		return false, nil
	}
	return true, nil
}

func (c *ChallengeStore) ClearVerified(ctx context.Context, phone string) error {
	return c.store.Delete(ctx, verifiedKeyPrefix+phone)
}
