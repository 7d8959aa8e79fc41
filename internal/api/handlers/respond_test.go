package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-app/api/internal/api/types"
	appErr "github.com/recipe-app/api/pkg/errors"
)

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("", "tags")
	require.NoError(t, err)
	assert.Nil(t, ids)

	a, b := uuid.New(), uuid.New()
	ids, err = parseIDList(a.String()+", "+b.String(), "tags")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = parseIDList(a.String()+",1", "ingredients")
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestQueryFlag(t *testing.T) {
	for raw, want := range map[string]bool{
		"/?assigned_only=1":     true,
		"/?assigned_only=true":  true,
		"/?assigned_only=0":     false,
		"/?assigned_only=maybe": false,
		"/":                     false,
	} {
		r := httptest.NewRequest(http.MethodGet, raw, nil)
		assert.Equal(t, want, queryFlag(r, "assigned_only"), raw)
	}
}

func TestRequireFullRecipe(t *testing.T) {
	title := "Soup"
	err := requireFullRecipe(types.RecipeRequest{Title: &title})
	var ae *appErr.AppError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "time_minutes")
	assert.Contains(t, ae.Fields, "price")
	assert.NotContains(t, ae.Fields, "title")
}
