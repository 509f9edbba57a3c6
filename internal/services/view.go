package services

import (
	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
)

const (
	FeedbackPrompt    = "Select an option and click Check answer."
	FeedbackCorrect   = "Correct. Next stage unlocked."
	FeedbackIncorrect = "Incorrect, try again to unlock the next stage."
)

// BuildView renders state for the client. The quiz is only shown once a
// response exists.
func BuildView(state models.SessionState) models.SessionView {
	view := models.SessionView{
		SessionID:   state.ID,
		StageIndex:  state.CurrentStageIndex,
		StageCount:  catalog.StageCount(),
		Question:    state.CurrentQuestion,
		Response:    state.LastResponse,
		QuizOptions: []string{},
		NextEnabled: state.QuizCorrect,
		BackEnabled: state.CurrentStageIndex > 0,
	}

	if stage, err := catalog.Stage(state.CurrentStageIndex); err == nil {
		view.StageLabel = stage.DisplayLabel
	}

	if !state.HasResponse() {
		return view
	}

	view.QuizPrompt = catalog.QuizPrompt
	for _, opt := range state.QuizOrder {
		view.QuizOptions = append(view.QuizOptions, opt.Description)
	}
	if state.SelectedChoice != nil {
		choice := *state.SelectedChoice
		view.SelectedChoice = &choice
	}
	view.Checked = state.Checked
	view.Correct = state.QuizCorrect

	switch {
	case !state.Checked:
		view.Feedback = FeedbackPrompt
	case state.QuizCorrect:
		view.Feedback = FeedbackCorrect
	default:
		view.Feedback = FeedbackIncorrect
	}

	return view
}
