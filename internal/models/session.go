package models

import "time"

// SessionState is the complete, serialisable state of one learner's walk
// through the stages.
type SessionState struct {
	ID                string       `json:"id"`
	CurrentStageIndex int          `json:"current_stage_index"`
	CurrentQuestion   string       `json:"current_question"`
	LastResponse      string       `json:"last_response"`
	QuizOrder         []QuizOption `json:"quiz_order"`
	SelectedChoice    *string      `json:"selected_choice,omitempty"`
	Checked           bool         `json:"checked"`
	QuizCorrect       bool         `json:"quiz_correct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasResponse reports whether a generation round has completed for the
// current stage.
func (s SessionState) HasResponse() bool {
	return s.LastResponse != ""
}

// Clone returns a copy that shares no mutable memory with s.
func (s SessionState) Clone() SessionState {
	out := s
	if s.QuizOrder != nil {
		out.QuizOrder = append([]QuizOption(nil), s.QuizOrder...)
	}
	if s.SelectedChoice != nil {
		choice := *s.SelectedChoice
		out.SelectedChoice = &choice
	}
	return out
}

// SessionView is the client-facing rendering of a session. It never carries
// the correct answer.
type SessionView struct {
	SessionID      string   `json:"session_id"`
	StageIndex     int      `json:"stage_index"`
	StageLabel     string   `json:"stage_label"`
	StageCount     int      `json:"stage_count"`
	Question       string   `json:"question"`
	Response       string   `json:"response"`
	QuizPrompt     string   `json:"quiz_prompt,omitempty"`
	QuizOptions    []string `json:"quiz_options"`
	SelectedChoice *string  `json:"selected_choice,omitempty"`
	Checked        bool     `json:"checked"`
	Correct        bool     `json:"correct"`
	Feedback       string   `json:"feedback,omitempty"`
	NextEnabled    bool     `json:"next_enabled"`
	BackEnabled    bool     `json:"back_enabled"`
}
