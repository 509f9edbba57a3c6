package services

import (
	"context"
	"strings"
	"testing"

	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/llm"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/SAP-F-2025/llm-dissector/internal/randx"
	"github.com/SAP-F-2025/llm-dissector/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, system, user string, maxOutputTokens int) llm.Result {
	args := m.Called(ctx, system, user, maxOutputTokens)
	return args.Get(0).(llm.Result)
}

func stageAt(t *testing.T, index int) models.Stage {
	t.Helper()
	stage, err := catalog.Stage(index)
	require.NoError(t, err)
	return stage
}

func correctLabel(t *testing.T, stageIndex int) string {
	t.Helper()
	stage := stageAt(t, stageIndex)
	for _, opt := range catalog.QuizOptions() {
		if opt.Key == stage.CorrectAnswerKey {
			return opt.Description
		}
	}
	t.Fatalf("no option for stage %d", stageIndex)
	return ""
}

func wrongLabel(t *testing.T, stageIndex int) string {
	t.Helper()
	stage := stageAt(t, stageIndex)
	for _, opt := range catalog.QuizOptions() {
		if opt.Key != stage.CorrectAnswerKey {
			return opt.Description
		}
	}
	t.Fatalf("no wrong option for stage %d", stageIndex)
	return ""
}

func answered(t *testing.T, stageIndex int) models.SessionState {
	t.Helper()
	rnd := randx.NewSeeded(7)
	s := NewSessionState("s-1", "question")
	s.CurrentStageIndex = stageIndex
	s = Reduce(s, BeginSend(), rnd)
	return Reduce(s, ResponseReady("some response"), rnd)
}

func TestReduce_EditQuestionOnlyChangesQuestion(t *testing.T) {
	s := answered(t, 2)
	s = Reduce(s, SelectChoice(correctLabel(t, 2)), nil)

	next := Reduce(s, EditQuestion("new question"), nil)

	assert.Equal(t, "new question", next.CurrentQuestion)
	next.CurrentQuestion = s.CurrentQuestion
	assert.Equal(t, s, next)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := answered(t, 1)
	s = Reduce(s, SelectChoice("x"), nil)
	before := s.Clone()

	_ = Reduce(s, NextStage(), nil)
	_ = Reduce(s, BeginSend(), randx.NewSeeded(3))
	_ = Reduce(s, CheckAnswer(), nil)

	assert.Equal(t, before, s)
}

func TestReduce_BeginSendResetsQuizAndShuffles(t *testing.T) {
	s := answered(t, 1)
	s = Reduce(s, SelectChoice(correctLabel(t, 1)), nil)
	s = Reduce(s, CheckAnswer(), nil)
	require.True(t, s.QuizCorrect)

	next := Reduce(s, BeginSend(), randx.NewSeeded(11))

	assert.False(t, next.Checked)
	assert.False(t, next.QuizCorrect)
	assert.Nil(t, next.SelectedChoice)
	assert.Equal(t, s.CurrentStageIndex, next.CurrentStageIndex)
	assert.ElementsMatch(t, catalog.QuizOptions(), next.QuizOrder)
}

func TestShuffledQuizOptions_IsPermutation(t *testing.T) {
	rnd := randx.NewSeeded(99)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		order := ShuffledQuizOptions(rnd)
		require.Len(t, order, len(catalog.QuizOptions()))
		assert.ElementsMatch(t, catalog.QuizOptions(), order)

		labels := make([]string, 0, len(order))
		for _, opt := range order {
			labels = append(labels, string(opt.Key))
		}
		seen[strings.Join(labels, "")] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestReduce_CheckAnswer(t *testing.T) {
	for stage := 0; stage < catalog.StageCount(); stage++ {
		s := answered(t, stage)

		correct := Reduce(Reduce(s, SelectChoice(correctLabel(t, stage)), nil), CheckAnswer(), nil)
		assert.True(t, correct.Checked)
		assert.True(t, correct.QuizCorrect, "stage %d", stage)

		wrong := Reduce(Reduce(s, SelectChoice(wrongLabel(t, stage)), nil), CheckAnswer(), nil)
		assert.True(t, wrong.Checked)
		assert.False(t, wrong.QuizCorrect, "stage %d", stage)
	}
}

func TestReduce_CheckWithoutSelectionIsIncorrect(t *testing.T) {
	s := Reduce(answered(t, 0), CheckAnswer(), nil)

	assert.True(t, s.Checked)
	assert.False(t, s.QuizCorrect)
}

func TestReduce_CheckUnknownLabelIsIncorrect(t *testing.T) {
	s := Reduce(Reduce(answered(t, 0), SelectChoice("not an option"), nil), CheckAnswer(), nil)

	assert.False(t, s.QuizCorrect)
}

func TestReduce_NextStageRequiresCorrectAnswer(t *testing.T) {
	s := answered(t, 0)
	next := Reduce(s, NextStage(), nil)
	assert.Equal(t, s, next)

	s = Reduce(Reduce(s, SelectChoice(wrongLabel(t, 0)), nil), CheckAnswer(), nil)
	next = Reduce(s, NextStage(), nil)
	assert.Equal(t, 0, next.CurrentStageIndex)
}

func TestReduce_NextStageAdvancesAndResets(t *testing.T) {
	s := answered(t, 0)
	s = Reduce(Reduce(s, SelectChoice(correctLabel(t, 0)), nil), CheckAnswer(), nil)

	next := Reduce(s, NextStage(), nil)

	assert.Equal(t, 1, next.CurrentStageIndex)
	assert.Empty(t, next.LastResponse)
	assert.False(t, next.Checked)
	assert.False(t, next.QuizCorrect)
	assert.Nil(t, next.SelectedChoice)
	assert.Empty(t, next.QuizOrder)
	assert.Equal(t, s.CurrentQuestion, next.CurrentQuestion)
}

func TestReduce_NextStageAtLastStageIsClamped(t *testing.T) {
	last := catalog.LastStageIndex
	s := answered(t, last)
	s = Reduce(Reduce(s, SelectChoice(correctLabel(t, last)), nil), CheckAnswer(), nil)
	require.True(t, s.QuizCorrect)

	next := Reduce(s, NextStage(), nil)

	assert.Equal(t, s, next)
}

func TestReduce_Back(t *testing.T) {
	s := answered(t, 0)
	assert.Equal(t, s, Reduce(s, Back(), nil))

	s = answered(t, 3)
	s = Reduce(Reduce(s, SelectChoice(correctLabel(t, 3)), nil), CheckAnswer(), nil)

	prev := Reduce(s, Back(), nil)

	assert.Equal(t, 2, prev.CurrentStageIndex)
	assert.Empty(t, prev.LastResponse)
	assert.False(t, prev.Checked)
	assert.False(t, prev.QuizCorrect)
	assert.Nil(t, prev.SelectedChoice)
}

func TestUntrainedOutput(t *testing.T) {
	out := UntrainedOutput(randx.NewSeeded(5), UntrainedOutputLength)

	assert.Len(t, out, UntrainedOutputLength)
	for _, r := range out {
		assert.True(t, strings.ContainsRune(UntrainedAlphabet, r), "unexpected %q", r)
	}
	assert.NotEqual(t, out, UntrainedOutput(randx.NewSeeded(6), UntrainedOutputLength))
}

func TestController_SendStageZeroIsSynthetic(t *testing.T) {
	gen := new(MockTextGenerator)
	c := NewController(gen, randx.NewSeeded(1))

	next, outcome, err := c.Send(context.Background(), NewSessionState("s-1", "anything"))

	require.NoError(t, err)
	assert.True(t, outcome.Synthetic)
	assert.Equal(t, "synthetic", outcome.ResultKind())
	assert.Len(t, next.LastResponse, UntrainedOutputLength)
	assert.Len(t, next.QuizOrder, len(catalog.QuizOptions()))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestController_SendUsesStageConfiguration(t *testing.T) {
	question := "What is the first-line treatment for hypertension in adults?"
	stage := stageAt(t, 3)

	gen := new(MockTextGenerator)
	gen.On("Generate", mock.Anything, stage.SystemInstructions, question, stage.MaxOutputTokens).
		Return(llm.OK("**Thiazides** are\n\n\n\nused"))

	s := NewSessionState("s-1", question)
	s.CurrentStageIndex = 3
	next, outcome, err := NewController(gen, randx.NewSeeded(1)).Send(context.Background(), s)

	require.NoError(t, err)
	assert.False(t, outcome.Synthetic)
	assert.Equal(t, "ok", outcome.ResultKind())
	assert.Equal(t, "Thiazides are\n\nused", next.LastResponse)
	gen.AssertExpectations(t)
}

func TestController_SendPreTrainingTransformsInput(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(user string) bool {
		return strings.HasSuffix(user, transform.PreTrainingSuffix)
	}), 320).Return(llm.OK("prose"))

	s := NewSessionState("s-1", catalog.DefaultPreset().Question)
	s.CurrentStageIndex = 1
	next, _, err := NewController(gen, randx.NewSeeded(1)).Send(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, "prose", next.LastResponse)
	gen.AssertExpectations(t)
}

func TestController_SendShowsFailuresInline(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(llm.ConfigError(llm.CredentialEnv + " not set in environment"))

	s := NewSessionState("s-1", "q")
	s.CurrentStageIndex = 4
	next, outcome, err := NewController(gen, nil).Send(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, "config_error", outcome.ResultKind())
	assert.Equal(t, "[Error: OPENAI_API_KEY not set in environment]", next.LastResponse)
	assert.True(t, next.HasResponse())
}

func TestController_SendRejectsUnknownStage(t *testing.T) {
	s := NewSessionState("s-1", "q")
	s.CurrentStageIndex = 42

	_, _, err := NewController(new(MockTextGenerator), nil).Send(context.Background(), s)

	assert.ErrorIs(t, err, ErrInvalidStage)
}
