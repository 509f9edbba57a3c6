package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/cache"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := NewSessionRepository(cache.NewMemoryCache(), time.Hour)
	ctx := context.Background()

	choice := "Untrained (no data)"
	state := &models.SessionState{
		ID:              "abc",
		CurrentQuestion: "q",
		QuizOrder:       []models.QuizOption{{Key: models.AnswerUntrained, Description: choice}},
		SelectedChoice:  &choice,
	}
	require.NoError(t, repo.Create(ctx, state))
	assert.False(t, state.CreatedAt.IsZero())

	loaded, err := repo.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "q", loaded.CurrentQuestion)
	require.NotNil(t, loaded.SelectedChoice)
	assert.Equal(t, choice, *loaded.SelectedChoice)
	assert.Len(t, loaded.QuizOrder, 1)

	loaded.CurrentStageIndex = 3
	require.NoError(t, repo.Update(ctx, loaded))

	again, err := repo.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, again.CurrentStageIndex)

	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.GetByID(ctx, "abc")
	assert.True(t, IsNotFoundError(err))
}

func TestSessionRepository_CreateRequiresID(t *testing.T) {
	repo := NewSessionRepository(cache.NewMemoryCache(), time.Hour)
	assert.Error(t, repo.Create(context.Background(), &models.SessionState{}))
}

func TestSessionRepository_DeleteAll(t *testing.T) {
	store := cache.NewMemoryCache()
	repo := NewSessionRepository(store, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.SessionState{ID: "1"}))
	require.NoError(t, repo.Create(ctx, &models.SessionState{ID: "2"}))
	require.NoError(t, store.Set(ctx, "unrelated", 1, 0))

	require.NoError(t, repo.DeleteAll(ctx))

	_, err := repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)

	var n int
	assert.NoError(t, store.Get(ctx, "unrelated", &n))
}
