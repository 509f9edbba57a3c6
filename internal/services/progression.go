package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/llm"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/SAP-F-2025/llm-dissector/internal/randx"
	"github.com/SAP-F-2025/llm-dissector/internal/textproc"
	"github.com/SAP-F-2025/llm-dissector/internal/transform"
)

const (
	UntrainedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		"!@#$%^&*()_+-=[]{}|;:,.<>/?~"
	UntrainedOutputLength = 200
)

type ActionType string

const (
	ActionEditQuestion  ActionType = "edit_question"
	ActionBeginSend     ActionType = "begin_send"
	ActionResponseReady ActionType = "response_ready"
	ActionSelectChoice  ActionType = "select_choice"
	ActionCheckAnswer   ActionType = "check_answer"
	ActionNextStage     ActionType = "next_stage"
	ActionBack          ActionType = "back"
)

// Action is one user (or completion) event fed to Reduce.
type Action struct {
	Type     ActionType
	Question string
	Choice   string
	Response string
}

func EditQuestion(question string) Action { return Action{Type: ActionEditQuestion, Question: question} }
func BeginSend() Action                   { return Action{Type: ActionBeginSend} }
func ResponseReady(text string) Action    { return Action{Type: ActionResponseReady, Response: text} }
func SelectChoice(label string) Action    { return Action{Type: ActionSelectChoice, Choice: label} }
func CheckAnswer() Action                 { return Action{Type: ActionCheckAnswer} }
func NextStage() Action                   { return Action{Type: ActionNextStage} }
func Back() Action                        { return Action{Type: ActionBack} }

// NewSessionState is the initial state: stage 0, nothing answered.
func NewSessionState(id, question string) models.SessionState {
	return models.SessionState{
		ID:              id,
		CurrentQuestion: question,
	}
}

// Reduce applies action to state and returns the next state. state is not
// modified. rnd is only consumed by ActionBeginSend.
func Reduce(state models.SessionState, action Action, rnd randx.Source) models.SessionState {
	next := state.Clone()

	switch action.Type {
	case ActionEditQuestion:
		next.CurrentQuestion = action.Question

	case ActionBeginSend:
		resetQuiz(&next)
		next.QuizOrder = ShuffledQuizOptions(rnd)

	case ActionResponseReady:
		next.LastResponse = action.Response

	case ActionSelectChoice:
		choice := action.Choice
		next.SelectedChoice = &choice

	case ActionCheckAnswer:
		next.Checked = true
		next.QuizCorrect = isCorrect(next)

	case ActionNextStage:
		if !next.QuizCorrect || next.CurrentStageIndex >= catalog.LastStageIndex {
			return next
		}
		next.CurrentStageIndex++
		resetStage(&next)

	case ActionBack:
		if next.CurrentStageIndex <= 0 {
			return next
		}
		next.CurrentStageIndex--
		resetStage(&next)
	}

	return next
}

func resetQuiz(s *models.SessionState) {
	s.Checked = false
	s.QuizCorrect = false
	s.SelectedChoice = nil
}

func resetStage(s *models.SessionState) {
	resetQuiz(s)
	s.LastResponse = ""
	s.QuizOrder = nil
}

// isCorrect resolves the selected label through the displayed order and
// compares its key with the stage's key. The stage catalog is the only
// source of the correct answer.
func isCorrect(s models.SessionState) bool {
	if s.SelectedChoice == nil {
		return false
	}
	opt, ok := catalog.OptionByDescription(s.QuizOrder, *s.SelectedChoice)
	if !ok {
		return false
	}
	stage, err := catalog.Stage(s.CurrentStageIndex)
	if err != nil {
		return false
	}
	return opt.Key == stage.CorrectAnswerKey
}

// ShuffledQuizOptions returns a fresh permutation of every quiz option.
func ShuffledQuizOptions(rnd randx.Source) []models.QuizOption {
	opts := catalog.QuizOptions()
	randx.OrDefault(rnd).Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

// UntrainedOutput imitates a randomly initialised model: length characters
// drawn uniformly from UntrainedAlphabet.
func UntrainedOutput(rnd randx.Source, length int) string {
	rnd = randx.OrDefault(rnd)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(UntrainedAlphabet[rnd.IntN(len(UntrainedAlphabet))])
	}
	return b.String()
}

// TextGenerator is the gateway contract the controller depends on.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string, maxOutputTokens int) llm.Result
}

// SendOutcome describes how the last response was produced.
type SendOutcome struct {
	Synthetic bool
	Result    llm.Result
}

// ResultKind names the outcome for logs and events.
func (o SendOutcome) ResultKind() string {
	if o.Synthetic {
		return "synthetic"
	}
	return string(o.Result.Kind)
}

// Controller runs the Send transition, the only one that does I/O.
type Controller struct {
	generator TextGenerator
	rnd       randx.Source
}

func NewController(generator TextGenerator, rnd randx.Source) *Controller {
	return &Controller{
		generator: generator,
		rnd:       randx.OrDefault(rnd),
	}
}

// Send reshuffles the quiz and produces a new response for the current
// stage. Stage 0 never reaches the generator.
func (c *Controller) Send(ctx context.Context, state models.SessionState) (models.SessionState, SendOutcome, error) {
	stage, err := catalog.Stage(state.CurrentStageIndex)
	if err != nil {
		return state, SendOutcome{}, fmt.Errorf("%w: %v", ErrInvalidStage, err)
	}

	next := Reduce(state, BeginSend(), c.rnd)

	if stage.Index == 0 {
		text := UntrainedOutput(c.rnd, UntrainedOutputLength)
		return Reduce(next, ResponseReady(text), nil), SendOutcome{Synthetic: true, Result: llm.OK(text)}, nil
	}

	input := transform.BuildInput(stage.Index, next.CurrentQuestion, c.rnd)
	result := c.generator.Generate(ctx, stage.SystemInstructions, input, stage.MaxOutputTokens)

	return Reduce(next, ResponseReady(textproc.Clean(result.Display())), nil), SendOutcome{Result: result}, nil
}
