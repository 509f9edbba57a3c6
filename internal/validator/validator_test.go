package validator

import (
	"testing"

	apperrors "github.com/SAP-F-2025/llm-dissector/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Choice string `json:"choice" validate:"required,notblank,max=10"`
}

func TestValidator_NotBlank(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Choice: "x"}))

	err := v.Validate(&sample{Choice: "   "})
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "choice", verrs[0].Field)
	assert.Equal(t, "notblank", verrs[0].Rule)
	assert.Equal(t, "must not be blank", verrs[0].Message)
}

func TestValidator_BuiltinRulesUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&sample{Choice: "far too long for this"})
	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "choice", verrs[0].Field)
	assert.Equal(t, "max", verrs[0].Rule)
	assert.Equal(t, "must be at most 10", verrs[0].Message)
}
