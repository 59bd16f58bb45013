package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator_GSTIN(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		GSTIN string `json:"gstin" binding:"omitempty,gstin"`
	}

	t.Run("valid GSTIN passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(payload{GSTIN: "27AAPFU0939F1ZV"}))
	})

	t.Run("empty GSTIN passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(payload{}))
	})

	t.Run("malformed GSTIN fails", func(t *testing.T) {
		assert.Error(t, v.Struct(payload{GSTIN: "not-a-gstin"}))
	})

	t.Run("wrong length fails", func(t *testing.T) {
		assert.Error(t, v.Struct(payload{GSTIN: "27AAPFU0939F1Z"}))
	})
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		Name  string `json:"buyer_name" binding:"required"`
		GSTIN string `json:"buyer_gstin" binding:"omitempty,gstin"`
	}

	err := v.Struct(payload{GSTIN: "bogus"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	// Field names come from the JSON tags
	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "buyer_name")
	assert.Contains(t, fields, "buyer_gstin")
}
