package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

const DefaultSessionTTL = 48 * time.Hour

// SessionStore keeps wizard sessions as JSON under wizard:session:{id}.
// Photo bytes are never stored; only metadata and uploaded URLs are.
type SessionStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionStore(r *Redis, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		client: r.Client,
		prefix: "wizard:session:",
		ttl:    ttl,
	}
}

func (s *SessionStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.WizardSession, error) {
	const op = "redis.SessionStore.Get"

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%s: session %s: %w", op, id, e.ErrNotFound)
		}
		return nil, e.WrapError(ctx, op, err)
	}

	var sess domain.WizardSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return &sess, nil
}

// Save writes the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *domain.WizardSession) error {
	const op = "redis.SessionStore.Save"

	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), b, s.ttl).Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "redis.SessionStore.Delete"

	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}
