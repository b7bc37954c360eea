package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquepro/estoque-api/pkg/validator"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Quantity int    `validate:"gt=0"`
}

func TestValidateStruct_Valido(t *testing.T) {
	out := validator.ValidateStruct(sampleRequest{Email: "ana@ejemplo.com", Quantity: 3})
	assert.Nil(t, out, "un struct válido no debe reportar errores")
}

func TestValidateStruct_CamposInvalidos(t *testing.T) {
	out := validator.ValidateStruct(sampleRequest{Email: "no-es-email", Quantity: 0})
	require.Len(t, out, 2)

	assert.Equal(t, "Email", out[0].Field)
	assert.Equal(t, "email", out[0].Tag)
	assert.Equal(t, "Quantity", out[1].Field)
	assert.Equal(t, "gt", out[1].Tag)
	assert.Equal(t, "0", out[1].Param)
}

// validator devuelve *InvalidValidationError para valores que no son struct;
// la función debe degradarse a un error genérico, nunca hacer panic.
func TestValidateStruct_NoStruct_NoPanic(t *testing.T) {
	var out []*validator.FieldError
	assert.NotPanics(t, func() {
		out = validator.ValidateStruct(42)
	})
	require.Len(t, out, 1)
	assert.Equal(t, "invalid_input", out[0].Tag)

	assert.NotPanics(t, func() {
		out = validator.ValidateStruct(nil)
	})
	require.Len(t, out, 1)
}
