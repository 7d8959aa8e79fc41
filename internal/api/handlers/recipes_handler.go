package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/api/validators"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/internal/services"
	appErr "github.com/recipe-app/api/pkg/errors"
)

type RecipesHandler struct {
	svc      services.RecipeService
	validate *validators.Validator
}

func NewRecipesHandler(svc services.RecipeService, v *validators.Validator) *RecipesHandler {
	return &RecipesHandler{svc: svc, validate: v}
}

// List returns the caller's recipes by title descending, optionally narrowed
// by comma-separated tag or ingredient ids.
func (h *RecipesHandler) List(w http.ResponseWriter, r *http.Request) {
	tagIDs, err := parseIDList(r.URL.Query().Get("tags"), "tags")
	if err != nil {
		writeError(w, err)
		return
	}
	ingredientIDs, err := parseIDList(r.URL.Query().Get("ingredients"), "ingredients")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.svc.ListRecipes(r.Context(), middleware.GetUserID(r.Context()), repository.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, r, types.NewRecipeList(items))
}

func (h *RecipesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.RecipeRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.CreateRecipe(r.Context(), middleware.GetUserID(r.Context()), recipeFields(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, types.NewRecipeDetailResponse(rec))
}

func (h *RecipesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "recipe")
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.GetRecipe(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewRecipeDetailResponse(rec))
}

// Replace (PUT) requires every scalar field; relations left out are kept.
func (h *RecipesHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// Patch updates only the fields present in the body.
func (h *RecipesHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *RecipesHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	id, err := pathID(r, "recipe")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.RecipeRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	if full {
		if err := requireFullRecipe(req); err != nil {
			writeError(w, err)
			return
		}
	}
	rec, err := h.svc.UpdateRecipe(r.Context(), middleware.GetUserID(r.Context()), id, recipeFields(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewRecipeDetailResponse(rec))
}

func (h *RecipesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "recipe")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteRecipe(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func recipeFields(req types.RecipeRequest) repository.RecipeFields {
	return repository.RecipeFields{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	}
}

func requireFullRecipe(req types.RecipeRequest) error {
	e := appErr.New(appErr.CodeInvalid, "validation failed")
	if req.Title == nil {
		e.WithField("title", "this field is required")
	}
	if req.TimeMinutes == nil {
		e.WithField("time_minutes", "this field is required")
	}
	if req.Price == nil {
		e.WithField("price", "this field is required")
	}
	if len(e.Fields) > 0 {
		return e
	}
	return nil
}

func parseIDList(raw, field string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, appErr.Invalid(field, "must be a comma-separated list of ids")
		}
		out = append(out, id)
	}
	return out, nil
}
