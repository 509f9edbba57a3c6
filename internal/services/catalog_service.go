package services

import (
	"context"

	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
)

// StageSummary is the public part of a stage. Prompts and answer keys stay
// on the server.
type StageSummary struct {
	Index           int    `json:"index"`
	DisplayLabel    string `json:"display_label"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

type CatalogService interface {
	ListStages(ctx context.Context) []StageSummary
	ListQuizOptions(ctx context.Context) []string
	ListPresets(ctx context.Context) []models.Preset
	GetPreset(ctx context.Context, id string) (*models.Preset, error)
}

type catalogService struct{}

func NewCatalogService() CatalogService {
	return &catalogService{}
}

func (s *catalogService) ListStages(ctx context.Context) []StageSummary {
	stages := catalog.Stages()
	out := make([]StageSummary, 0, len(stages))
	for _, st := range stages {
		out = append(out, StageSummary{
			Index:           st.Index,
			DisplayLabel:    st.DisplayLabel,
			MaxOutputTokens: st.MaxOutputTokens,
		})
	}
	return out
}

// ListQuizOptions returns the option labels in catalog order, without keys.
func (s *catalogService) ListQuizOptions(ctx context.Context) []string {
	opts := catalog.QuizOptions()
	out := make([]string, 0, len(opts))
	for _, opt := range opts {
		out = append(out, opt.Description)
	}
	return out
}

func (s *catalogService) ListPresets(ctx context.Context) []models.Preset {
	return catalog.Presets()
}

func (s *catalogService) GetPreset(ctx context.Context, id string) (*models.Preset, error) {
	preset, ok := catalog.PresetByID(id)
	if !ok {
		return nil, ErrPresetNotFound
	}
	return &preset, nil
}
