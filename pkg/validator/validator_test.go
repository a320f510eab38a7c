package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/listcalc/pkg/validator"
)

type request struct {
	Name string `json:"name" validate:"required,notblank,max=10"`
}

func TestValidate_NotBlank(t *testing.T) {
	err := validator.Validate(request{Name: "   "})
	require.Error(t, err)
	fields := validator.FormatValidationErrors(err)
	assert.Equal(t, "campo requerido", fields["name"])

	assert.NoError(t, validator.Validate(request{Name: "Leite"}))
}

func TestValidate_Max(t *testing.T) {
	err := validator.Validate(request{Name: "nombre demasiado largo"})
	require.Error(t, err)
	assert.Equal(t, "longitud máxima 10", validator.FormatValidationErrors(err)["name"])
}

func TestFormatValidationErrors_ErrorAjeno(t *testing.T) {
	assert.Empty(t, validator.FormatValidationErrors(assert.AnError))
}
