package catalog

import (
	"strings"
	"testing"

	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages_Invariants(t *testing.T) {
	all := Stages()
	require.Len(t, all, 6)
	assert.Equal(t, 5, LastStageIndex)
	assert.Equal(t, 6, StageCount())

	wantKeys := []models.AnswerKey{
		models.AnswerUntrained,
		models.AnswerInternet,
		models.AnswerBiomedical,
		models.AnswerInstruction,
		models.AnswerSafety,
		models.AnswerRealWorld,
	}
	keys := map[models.AnswerKey]bool{}
	for i, st := range all {
		assert.Equal(t, i, st.Index)
		assert.Equal(t, wantKeys[i], st.CorrectAnswerKey)
		assert.False(t, keys[st.CorrectAnswerKey], "duplicate key %s", st.CorrectAnswerKey)
		keys[st.CorrectAnswerKey] = true
		assert.GreaterOrEqual(t, st.MaxOutputTokens, 0)
		assert.True(t, strings.HasPrefix(st.SystemInstructions, "Pedagogical demo. Research-only.\n"))
		assert.True(t, strings.HasPrefix(st.DisplayLabel, "Stage "))
	}

	assert.Equal(t, models.AnswerUntrained, all[0].CorrectAnswerKey)
	assert.Equal(t, 0, all[0].MaxOutputTokens)
	assert.Equal(t, []int{0, 320, 360, 420, 280, 340}, []int{
		all[0].MaxOutputTokens, all[1].MaxOutputTokens, all[2].MaxOutputTokens,
		all[3].MaxOutputTokens, all[4].MaxOutputTokens, all[5].MaxOutputTokens,
	})
}

func TestStages_ReturnsCopy(t *testing.T) {
	all := Stages()
	all[0].DisplayLabel = "mutated"
	first, err := Stage(0)
	require.NoError(t, err)
	assert.Equal(t, "Stage 1: Random initialization", first.DisplayLabel)
}

func TestStage_OutOfRange(t *testing.T) {
	_, err := Stage(-1)
	assert.Error(t, err)
	_, err = Stage(6)
	assert.Error(t, err)

	st, err := Stage(5)
	require.NoError(t, err)
	assert.Equal(t, "Stage 6: Real-world alignment", st.DisplayLabel)
	assert.Contains(t, st.SystemInstructions, `"What to validate locally:"`)
}

func TestQuizOptions_CoverEveryStageKey(t *testing.T) {
	opts := QuizOptions()
	require.Len(t, opts, 6)

	byKey := map[models.AnswerKey]string{}
	for _, o := range opts {
		byKey[o.Key] = o.Description
	}
	for _, st := range Stages() {
		assert.NotEmpty(t, byKey[st.CorrectAnswerKey], "no option for stage %d", st.Index)
	}
	assert.Equal(t, "Untrained (no data)", byKey[models.AnswerUntrained])

	opt, ok := OptionByDescription(opts, "Instruction-response datasets")
	require.True(t, ok)
	assert.Equal(t, models.AnswerInstruction, opt.Key)

	_, ok = OptionByDescription(opts, "nope")
	assert.False(t, ok)
}

func TestPresets(t *testing.T) {
	all := Presets()
	require.Len(t, all, 3)
	assert.Equal(t, PresetTrick, DefaultPreset().ID)

	p, ok := PresetByID(PresetLocal)
	require.True(t, ok)
	assert.Contains(t, p.Question, "Please answer in Hindi.")

	_, ok = PresetByID("unknown")
	assert.False(t, ok)
}
