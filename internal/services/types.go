package services

type UpdateQuestionRequest struct {
	Question string `json:"question" validate:"max=8000"`
}

type SelectChoiceRequest struct {
	Choice string `json:"choice" validate:"required,notblank,max=200"`
}

type ApplyPresetRequest struct {
	PresetID string `json:"preset_id" validate:"required,notblank,max=64"`
}
