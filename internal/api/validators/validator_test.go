package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/recipe-app/api/pkg/errors"
)

type signup struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=5"`
	Link     *string `json:"link,omitempty" validate:"omitempty,url"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	bad := "not a url"
	err := New().Struct(signup{Email: "nope", Password: "abc", Link: &bad})
	require.Error(t, err)

	var ae *appErr.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, appErr.CodeInvalid, ae.Code)
	assert.Equal(t, "enter a valid email address", ae.Fields["email"])
	assert.Equal(t, "ensure this field has at least 5 characters", ae.Fields["password"])
	assert.Equal(t, "enter a valid URL", ae.Fields["link"])
}

func TestStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, New().Struct(signup{Email: "a@b.com", Password: "secret"}))
}
