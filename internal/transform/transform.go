// Package transform degrades the user's question into the text each
// simulated training stage actually receives.
package transform

import (
	"strings"

	"github.com/SAP-F-2025/llm-dissector/internal/randx"
	"github.com/SAP-F-2025/llm-dissector/internal/textproc"
)

const (
	// PreTrainingSuffix follows the shuffled keywords at stage 1.
	PreTrainingSuffix = "\n\nContinue writing as if this is a literary blog or novel mid-paragraph. Do not answer questions."

	// ContinuedPreTrainingLimit caps the stage 2 input, in characters.
	ContinuedPreTrainingLimit = 1200
)

// BuildInput maps a stage index and the original question to the user text
// sent to the generation service. Only stage 1 consumes randomness.
func BuildInput(stageIndex int, question string, rnd randx.Source) string {
	switch {
	case stageIndex <= 0:
		return ""
	case stageIndex == 1:
		return preTrainingInput(question, rnd)
	case stageIndex == 2:
		return continuedPreTrainingInput(question)
	default:
		return question
	}
}

func preTrainingInput(question string, rnd randx.Source) string {
	words := textproc.LongestWords(question, textproc.DefaultKeywordCount, textproc.DefaultKeywordMinLength)
	randx.OrDefault(rnd).Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return strings.Join(words, " ") + PreTrainingSuffix
}

func continuedPreTrainingInput(question string) string {
	filtered := textproc.RemoveShortWordsPreserveOrder(question, textproc.DefaultShortWordLength)
	return truncateChars(filtered, ContinuedPreTrainingLimit)
}

// truncateChars keeps the first limit characters. Tokens are ASCII so this
// is also a byte cut, but runes are counted to stay safe.
func truncateChars(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
