package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/llm-dissector/internal/errors"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSendInFlight     = errors.New("a send is already in progress for this session")
	ErrQuizNotAvailable = errors.New("no response to quiz yet; send first")
	ErrInvalidChoice    = errors.New("choice is not one of the displayed quiz options")
	ErrInvalidStage     = errors.New("session is at an unknown stage")

	ErrPresetNotFound = errors.New("preset not found")

	ErrExportDisabled = errors.New("catalog export is disabled")
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrPresetNotFound)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrInvalidChoice) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSendInFlight) ||
		errors.Is(err, ErrQuizNotAvailable)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrExportDisabled)
}
