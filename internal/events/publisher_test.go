package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 4}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "progression")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "progression", discardLogger())
	event := NewQuizCheckedEvent(models.SessionState{ID: "s-1", CurrentStageIndex: 2, QuizCorrect: true})
	require.NoError(t, publisher.PublishProgressionEvent(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventQuizChecked), msg.Metadata.Get("event_type"))
		assert.Equal(t, "s-1", msg.Metadata.Get("session_id"))

		var decoded ProgressionEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventQuizChecked, decoded.Type)
		assert.Equal(t, "llm-dissector", decoded.Source)
	case <-ctx.Done():
		t.Fatal("timed out waiting for published message")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(discardLogger())
	ctx := context.Background()

	require.NoError(t, publisher.PublishProgressionEvent(ctx, NewSessionEndedEvent("s-1")))
	require.NoError(t, publisher.PublishProgressionEvent(ctx, NewStageChangedEvent("s-1", 0, 1)))

	events := publisher.GetPublishedEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventSessionEnded, events[0].Type)
	assert.Equal(t, EventStageAdvanced, events[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}

func TestNewStageChangedEvent(t *testing.T) {
	assert.Nil(t, NewStageChangedEvent("s", 5, 5))

	back := NewStageChangedEvent("s", 3, 2)
	require.NotNil(t, back)
	assert.Equal(t, EventStageReverted, back.Type)
	assert.Equal(t, StageChangedEvent{FromStage: 3, ToStage: 2}, back.Data)
}

func TestEventEnvelope(t *testing.T) {
	event := NewResponseGeneratedEvent(models.SessionState{ID: "s", CurrentStageIndex: 0, LastResponse: "abc"}, "synthetic", true)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "1.0", event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, 3, event.Data.(ResponseGeneratedEvent).ResponseLength)
}
