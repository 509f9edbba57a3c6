package models

// AnswerKey identifies a training-data category in the quiz.
type AnswerKey string

const (
	AnswerUntrained   AnswerKey = "A"
	AnswerInternet    AnswerKey = "B"
	AnswerBiomedical  AnswerKey = "C"
	AnswerInstruction AnswerKey = "D"
	AnswerSafety      AnswerKey = "E"
	AnswerRealWorld   AnswerKey = "F"
)

// Stage is one simulated point in a model's training lifecycle.
type Stage struct {
	Index              int       `json:"index"`
	DisplayLabel       string    `json:"display_label"`
	CorrectAnswerKey   AnswerKey `json:"-"`
	MaxOutputTokens    int       `json:"max_output_tokens"`
	SystemInstructions string    `json:"-"`
}

// QuizOption pairs an answer key with the training-data description shown
// to the user.
type QuizOption struct {
	Key         AnswerKey `json:"key"`
	Description string    `json:"description"`
}

// Preset is one of the example questions offered to seed a session.
type Preset struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Question string `json:"question"`
}
