package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"signal-relay/internal/domain"
)

const keyPrefix = "session:"

// DefaultTTL bounds how long a dispatched signal stays interactive. Evicted
// sessions surface to users as "session expired" on their next tap.
const DefaultTTL = 24 * time.Hour

// RedisStore persists sessions in Redis with a TTL so the store cannot grow
// without bound. Entries are JSON blobs; creation is guarded by SET NX so a
// reused key is detected atomically.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, sess domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.Key, err)
	}
	ok, err := s.client.SetNX(ctx, keyPrefix+sess.Key, payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session %s: %w", sess.Key, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSession, sess.Key)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (domain.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, key)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session %s: %w", key, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode session %s: %w", key, err)
	}
	return sess, nil
}

// SetCurrentView reads, mutates and writes back the session blob. Callers
// serialize per-key interaction handling, so the read-modify-write does not
// race for a given key.
func (s *RedisStore) SetCurrentView(ctx context.Context, key string, view domain.View) error {
	sess, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	sess.CurrentView = view

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", key, err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("update session %s: %w", key, err)
	}
	return nil
}
