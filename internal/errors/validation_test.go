package errors

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("choice", "is required", "")

	assert.Equal(t, "choice", err.Field)
	assert.Equal(t, "is required", err.Message)
	assert.Equal(t, "validation error on field 'choice': is required", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("question", "must be at most 8000", nil))
	assert.Equal(t, "validation failed: question must be at most 8000", errs.Error())

	errs = append(errs, *NewValidationErrorWithRule("choice", "is required", "required", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
	assert.Equal(t, "required", errs[1].Rule)
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Choice string `validate:"required"`
		Note   string `validate:"max=3"`
	}

	err := validator.New().Struct(payload{Note: "too long"})
	require.Error(t, err)

	converted := ToValidationErrors(err)
	require.Len(t, converted, 2)
	assert.Equal(t, "Choice", converted[0].Field)
	assert.Equal(t, "is required", converted[0].Message)
	assert.Equal(t, "must be at most 3", converted[1].Message)

	assert.Nil(t, ToValidationErrors(errors.New("plain")))
}
