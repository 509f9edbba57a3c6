package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/llm-dissector/internal/models"
)

var ErrNotFound = errors.New("record not found")

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// SessionRepository stores the ephemeral state of active sessions.
type SessionRepository interface {
	Create(ctx context.Context, state *models.SessionState) error
	GetByID(ctx context.Context, id string) (*models.SessionState, error)
	Update(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
