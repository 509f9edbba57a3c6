package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/cache"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
)

const sessionKeyPrefix = "llm-dissector:session:"

type sessionRepository struct {
	cache cache.CacheService
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionRepository keeps each session under its own key. Every write
// refreshes the TTL, so idle sessions expire on their own.
func NewSessionRepository(store cache.CacheService, ttl time.Duration) SessionRepository {
	return &sessionRepository{
		cache: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *sessionRepository) Create(ctx context.Context, state *models.SessionState) error {
	if state.ID == "" {
		return errors.New("session id is required")
	}
	now := r.now().UTC()
	state.CreatedAt = now
	state.UpdatedAt = now
	if err := r.cache.Set(ctx, sessionKey(state.ID), state, r.ttl); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.SessionState, error) {
	var state models.SessionState
	if err := r.cache.Get(ctx, sessionKey(id), &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &state, nil
}

func (r *sessionRepository) Update(ctx context.Context, state *models.SessionState) error {
	state.UpdatedAt = r.now().UTC()
	if err := r.cache.Set(ctx, sessionKey(state.ID), state, r.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteAll(ctx context.Context) error {
	return r.cache.DeletePattern(ctx, sessionKeyPrefix+"*")
}
