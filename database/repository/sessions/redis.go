package sessionsRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fixpoint/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "booking:session:"

// reclaimGrace keeps expired sessions readable past their expiry so the sweep
// can release held slots before Redis evicts the key.
const reclaimGrace = time.Hour

// RedisSessionStore implements Store over Redis, JSON-marshalling each
// session under a TTL'd key.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a session store over the given client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) key(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisSessionStore) set(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt) + reclaimGrace
	if ttl <= 0 {
		ttl = reclaimGrace
	}
	if err := s.client.Set(ctx, s.key(session.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Create(session *models.BookingSession) error {
	return s.set(context.Background(), session)
}

func (s *RedisSessionStore) Get(id string) (*models.BookingSession, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Update(session *models.BookingSession) error {
	ctx := context.Background()
	exists, err := s.client.Exists(ctx, s.key(session.SessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check booking session: %w", err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}
	return s.set(ctx, session)
}

func (s *RedisSessionStore) Delete(id string) error {
	if err := s.client.Del(context.Background(), s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// Transition flips the status with an optimistic WATCH/MULTI transaction, so
// concurrent reclaim paths across instances resolve to exactly one winner.
func (s *RedisSessionStore) Transition(id string, from, to models.SessionStatus) (*models.BookingSession, bool, error) {
	ctx := context.Background()
	const attempts = 3
	for i := 0; i < attempts; i++ {
		var session models.BookingSession
		applied := false
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, s.key(id)).Result()
			if err == redis.Nil {
				return ErrSessionNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to load booking session: %w", err)
			}
			if err := json.Unmarshal([]byte(data), &session); err != nil {
				return fmt.Errorf("failed to parse booking session: %w", err)
			}
			if session.Status != from {
				return nil
			}
			session.Status = to
			payload, err := json.Marshal(&session)
			if err != nil {
				return fmt.Errorf("failed to marshal booking session: %w", err)
			}
			ttl := time.Until(session.ExpiresAt) + reclaimGrace
			if ttl <= 0 {
				ttl = reclaimGrace
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, s.key(id), payload, ttl)
				return nil
			})
			if err != nil {
				return err
			}
			applied = true
			return nil
		}, s.key(id))
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return &session, applied, nil
	}
	return nil, false, fmt.Errorf("booking session %s is under contention", id)
}

// ExpiredBefore scans session keys and returns in-progress sessions past
// expiry. The scan is bounded by the key TTLs, so the set stays small.
func (s *RedisSessionStore) ExpiredBefore(t time.Time) ([]models.BookingSession, error) {
	ctx := context.Background()
	var out []models.BookingSession
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load booking session during sweep: %w", err)
		}
		var session models.BookingSession
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			continue
		}
		if session.Status == models.SessionInProgress && t.After(session.ExpiresAt) {
			out = append(out, session)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("session sweep scan failed: %w", err)
	}
	return out, nil
}
