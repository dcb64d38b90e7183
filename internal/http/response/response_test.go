package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type request struct {
		FirstName string `validate:"required"`
		Email     string `validate:"required,email"`
		Note      string `validate:"max=3"`
	}

	v := validator.New()
	err := v.Struct(request{Email: "not-an-email", Note: "too long"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field FirstName is a required field, field Email must be a valid email, field Note must be at most 3 characters",
		resp.Error)
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"a": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
}

func TestError(t *testing.T) {
	assert.Equal(t, ErrorResponse{Status: StatusError, Error: "boom"}, Error("boom"))
}

func TestMessage(t *testing.T) {
	resp := Message("done")
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, map[string]string{"message": "done"}, resp.Data)
}
