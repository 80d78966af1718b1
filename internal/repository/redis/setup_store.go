// Package redis implements the session-scoped setup store. Setup state and
// bootstrapped interview sessions live here under TTLs; nothing in this store
// is long-lived.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"seekers/internal/domain"
)

const (
	setupKeyPrefix   = "interview:setup:"
	sessionKeyPrefix = "interview:session:"

	// A setup that sits untouched for this long is abandoned.
	setupTTL = 2 * time.Hour
	// Sessions outlive their setup slightly so the interview room can reload.
	sessionTTL = 4 * time.Hour
)

type setupStore struct {
	client *redis.Client
}

// NewSetupStore connects to redis and returns a SetupStore. It pings the
// server so a misconfigured address fails at startup, not first use.
func NewSetupStore(ctx context.Context, addr, password string) (domain.SetupStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &setupStore{client: client}, nil
}

func (s *setupStore) SaveSetup(ctx context.Context, setup *domain.Setup) error {
	payload, err := json.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	if err := s.client.Set(ctx, setupKeyPrefix+setup.ID, payload, setupTTL).Err(); err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	return nil
}

func (s *setupStore) GetSetup(ctx context.Context, id string) (*domain.Setup, error) {
	payload, err := s.client.Get(ctx, setupKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSetupNotFound
		}
		return nil, fmt.Errorf("failed to load setup: %w", err)
	}
	var setup domain.Setup
	if err := json.Unmarshal(payload, &setup); err != nil {
		return nil, fmt.Errorf("failed to decode setup: %w", err)
	}
	return &setup, nil
}

func (s *setupStore) DeleteSetup(ctx context.Context, id string) error {
	return s.client.Del(ctx, setupKeyPrefix+id).Err()
}

func (s *setupStore) SaveSession(ctx context.Context, userID string, session *domain.InterviewSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+userID, payload, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *setupStore) DeleteSession(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+userID).Err()
}

func (s *setupStore) GetSession(ctx context.Context, userID string) (*domain.InterviewSession, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSetupNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session domain.InterviewSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}
