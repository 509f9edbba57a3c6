package events

import (
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/google/uuid"
)

// EventType names a progression event.
type EventType string

const (
	EventSessionStarted    EventType = "session.started"
	EventSessionEnded      EventType = "session.ended"
	EventResponseGenerated EventType = "response.generated"
	EventQuizChecked       EventType = "quiz.checked"
	EventStageAdvanced     EventType = "stage.advanced"
	EventStageReverted     EventType = "stage.reverted"
)

const (
	eventSource  = "llm-dissector"
	eventVersion = "1.0"
)

// ProgressionEvent is the envelope for every event.
type ProgressionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SessionStartedEvent struct {
	StageIndex int `json:"stage_index"`
}

type ResponseGeneratedEvent struct {
	StageIndex     int    `json:"stage_index"`
	ResultKind     string `json:"result_kind"`
	ResponseLength int    `json:"response_length"`
	Synthetic      bool   `json:"synthetic"`
}

type QuizCheckedEvent struct {
	StageIndex int  `json:"stage_index"`
	Answered   bool `json:"answered"`
	Correct    bool `json:"correct"`
}

type StageChangedEvent struct {
	FromStage int `json:"from_stage"`
	ToStage   int `json:"to_stage"`
}

func newEvent(eventType EventType, sessionID string, data interface{}) *ProgressionEvent {
	return &ProgressionEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewSessionStartedEvent(state models.SessionState) *ProgressionEvent {
	return newEvent(EventSessionStarted, state.ID, SessionStartedEvent{StageIndex: state.CurrentStageIndex})
}

func NewSessionEndedEvent(sessionID string) *ProgressionEvent {
	return newEvent(EventSessionEnded, sessionID, nil)
}

func NewResponseGeneratedEvent(state models.SessionState, resultKind string, synthetic bool) *ProgressionEvent {
	return newEvent(EventResponseGenerated, state.ID, ResponseGeneratedEvent{
		StageIndex:     state.CurrentStageIndex,
		ResultKind:     resultKind,
		ResponseLength: len([]rune(state.LastResponse)),
		Synthetic:      synthetic,
	})
}

func NewQuizCheckedEvent(state models.SessionState) *ProgressionEvent {
	return newEvent(EventQuizChecked, state.ID, QuizCheckedEvent{
		StageIndex: state.CurrentStageIndex,
		Answered:   state.SelectedChoice != nil,
		Correct:    state.QuizCorrect,
	})
}

// NewStageChangedEvent returns nil when the stage did not move.
func NewStageChangedEvent(sessionID string, from, to int) *ProgressionEvent {
	switch {
	case to > from:
		return newEvent(EventStageAdvanced, sessionID, StageChangedEvent{FromStage: from, ToStage: to})
	case to < from:
		return newEvent(EventStageReverted, sessionID, StageChangedEvent{FromStage: from, ToStage: to})
	default:
		return nil
	}
}

func GenerateEventID() string {
	return uuid.NewString()
}
