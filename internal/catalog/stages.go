package catalog

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/llm-dissector/internal/models"
)

const globalPreface = "Pedagogical demo. Research-only.\n"

var stages = []models.Stage{
	{
		Index:              0,
		DisplayLabel:       "Stage 1: Random initialization",
		CorrectAnswerKey:   models.AnswerUntrained,
		MaxOutputTokens:    0,
		SystemInstructions: globalPreface,
	},
	{
		Index:            1,
		DisplayLabel:     "Stage 2: Pre-training",
		CorrectAnswerKey: models.AnswerInternet,
		MaxOutputTokens:  320,
		SystemInstructions: globalPreface + trimBlock(`
Simulate large-scale generic internet text pre-training (next-token completion). Not instruction-following.
Write fluent English prose as if continuing a blog/novel mid-paragraph.
Do not answer questions. No lists. No clinical guidance.
Plain text only. No markdown.
`),
	},
	{
		Index:            2,
		DisplayLabel:     "Stage 3: Continued pre-training",
		CorrectAnswerKey: models.AnswerBiomedical,
		MaxOutputTokens:  360,
		SystemInstructions: globalPreface + trimBlock(`
Simulate continued pre-training on biomedical and scientific literature. Still not instruction-following.
Infer a plausible hidden scientific question and continue as if finishing a PubMed abstract/review excerpt.
Formal scientific English only. Do not translate. Ignore any language cues in the input.
Do not provide dosing or step-by-step treatment.
Plain text only. No markdown.
`),
	},
	{
		Index:            3,
		DisplayLabel:     "Stage 4: Instruction tuning",
		CorrectAnswerKey: models.AnswerInstruction,
		MaxOutputTokens:  420,
		SystemInstructions: globalPreface + trimBlock(`
You are trained on instruction-response datasets.
Follow the user request where possible, but do not invent documents/guidelines/authorities.
If the requested guideline appears not to exist, say you cannot verify it; optionally provide clearly labeled
"Illustrative (hypothetical)" citation formats.
Plain text only. No markdown.
Put any disclaimer as the final line starting with "Note:".
`),
	},
	{
		Index:            4,
		DisplayLabel:     "Stage 5: Safety tuning",
		CorrectAnswerKey: models.AnswerSafety,
		MaxOutputTokens:  280,
		SystemInstructions: globalPreface + trimBlock(`
You are trained on safety and policy-aligned examples.
3-6 bullets, each starting with "- ".
Avoid invented sources. Avoid dosing and step-by-step treatment.
Put any disclaimer as the final line starting with "Note:".
Plain text only. No markdown.
`),
	},
	{
		Index:            5,
		DisplayLabel:     "Stage 6: Real-world alignment",
		CorrectAnswerKey: models.AnswerRealWorld,
		MaxOutputTokens:  340,
		SystemInstructions: globalPreface + trimBlock(`
You are trained on domain- and locale-specific real-world data for clinical settings.
Respond in the same language as the user.
6-8 bullets, each starting with "- ".
Include one bullet that begins exactly: "What to validate locally:"
Avoid invented sources. Avoid dosing and step-by-step treatment.
Put any disclaimer as the final line starting with "Note:".
Plain text only. No markdown.
`),
	},
}

// LastStageIndex is the highest reachable stage.
var LastStageIndex = len(stages) - 1

func trimBlock(s string) string {
	return strings.TrimSpace(s)
}

// Stages returns the ordered stage table. The slice is a copy.
func Stages() []models.Stage {
	return append([]models.Stage(nil), stages...)
}

// StageCount is the number of stages in the catalog.
func StageCount() int {
	return len(stages)
}

// Stage looks up a stage by index.
func Stage(index int) (models.Stage, error) {
	if index < 0 || index >= len(stages) {
		return models.Stage{}, fmt.Errorf("stage index %d out of range [0,%d]", index, LastStageIndex)
	}
	return stages[index], nil
}
