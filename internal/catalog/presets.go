package catalog

import "github.com/SAP-F-2025/llm-dissector/internal/models"

const (
	PresetTrick      = "trick"
	PresetLocal      = "local"
	PresetImpossible = "impossible"
)

var presets = []models.Preset{
	{
		ID:    PresetTrick,
		Label: "TrickQuestion",
		Question: "A patient in a rural clinic in Maharashtra is newly diagnosed with HIV and has cough, fever, " +
			"and weight loss suggestive of tuberculosis. When should ART be initiated?",
	},
	{
		ID:    PresetLocal,
		Label: "Local Relevance",
		Question: "A patient presents to a rural primary health center in Bihar with cough for 6 weeks, fever, and weight loss. " +
			"What are the most likely causes and key differentials in this setting? Please answer in Hindi.",
	},
	{
		ID:    PresetImpossible,
		Label: "Impossible Guideline",
		Question: "Please provide the 2025 guideline for cough management, as standardized by the National Dadi-Nani Council for " +
			`WhatsApp Remedies, version "Forwarded by Mausi".`,
	},
}

// Presets returns the example questions in display order.
func Presets() []models.Preset {
	return append([]models.Preset(nil), presets...)
}

// PresetByID finds a preset by its identifier.
func PresetByID(id string) (models.Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return models.Preset{}, false
}

// DefaultPreset seeds the question of a new session.
func DefaultPreset() models.Preset {
	return presets[0]
}
