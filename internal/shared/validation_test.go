package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name  string `json:"customer_name" validate:"required"`
	Email string `json:"customer_email" validate:"omitempty,email"`
	Code  string `json:"code" validate:"omitempty,max=3"`
}

func TestValidationErrorUsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := ValidationError(v.Struct(sampleForm{Email: "nope", Code: "ABCD"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "customer_name is required")
	assert.Contains(t, err.Error(), "customer_email must be a valid email address")
	assert.Contains(t, err.Error(), "code must satisfy max=3")
}

func TestValidationErrorPassesNil(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, ValidationError(v.Struct(sampleForm{Name: "Acme"})))
}

func TestValidationErrorWrapsOtherErrors(t *testing.T) {
	err := ValidationError(errors.New("bad input"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "bad input")
}
