package catalog

import "github.com/SAP-F-2025/llm-dissector/internal/models"

// QuizPrompt is the question asked after every response.
const QuizPrompt = "Based on behaviour, what kind of training data most likely shaped this model?"

var quizOptions = []models.QuizOption{
	{Key: models.AnswerUntrained, Description: "Untrained (no data)"},
	{Key: models.AnswerInternet, Description: "Large-scale generic internet text"},
	{Key: models.AnswerBiomedical, Description: "Biomedical and scientific literature"},
	{Key: models.AnswerInstruction, Description: "Instruction-response datasets"},
	{Key: models.AnswerSafety, Description: "Safety and policy-aligned examples"},
	{Key: models.AnswerRealWorld, Description: "Domain- and locale-specific real-world data"},
}

// QuizOptions returns the fixed answer bank in key order. The slice is a copy.
func QuizOptions() []models.QuizOption {
	return append([]models.QuizOption(nil), quizOptions...)
}

// OptionByDescription resolves a displayed label back to its option.
func OptionByDescription(options []models.QuizOption, description string) (models.QuizOption, bool) {
	for _, opt := range options {
		if opt.Description == description {
			return opt, true
		}
	}
	return models.QuizOption{}, false
}
