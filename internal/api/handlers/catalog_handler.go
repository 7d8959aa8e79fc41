package handlers

import (
	"net/http"

	"github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/api/validators"
	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/services"
)

// CatalogHandler serves the tag and ingredient endpoints. Every operation is
// scoped to the authenticated caller.
type CatalogHandler[T any, PT models.Owned[T]] struct {
	svc      services.CatalogService[T]
	validate *validators.Validator
	entity   string
}

func NewCatalogHandler[T any, PT models.Owned[T]](svc services.CatalogService[T], v *validators.Validator, entity string) *CatalogHandler[T, PT] {
	return &CatalogHandler[T, PT]{svc: svc, validate: v, entity: entity}
}

func NewTagsHandler(svc services.CatalogService[models.Tag], v *validators.Validator) *CatalogHandler[models.Tag, *models.Tag] {
	return NewCatalogHandler[models.Tag, *models.Tag](svc, v, "tag")
}

func NewIngredientsHandler(svc services.CatalogService[models.Ingredient], v *validators.Validator) *CatalogHandler[models.Ingredient, *models.Ingredient] {
	return NewCatalogHandler[models.Ingredient, *models.Ingredient](svc, v, "ingredient")
}

// List returns the caller's records by name descending. assigned_only=1
// restricts the result to records used by at least one of the caller's
// recipes.
func (h *CatalogHandler[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()), queryFlag(r, "assigned_only"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, r, types.NewNamedList[T, PT](items))
}

func (h *CatalogHandler[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	var req types.NamedRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	obj, err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, types.NewNamedResponse(PT(obj).Record()))
}

func (h *CatalogHandler[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, h.entity)
	if err != nil {
		writeError(w, err)
		return
	}
	obj, err := h.svc.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewNamedResponse(PT(obj).Record()))
}

// Update serves both PUT and PATCH; name is the only writable field.
func (h *CatalogHandler[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, h.entity)
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.NamedRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	obj, err := h.svc.Rename(r.Context(), middleware.GetUserID(r.Context()), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewNamedResponse(PT(obj).Record()))
}

func (h *CatalogHandler[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, h.entity)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
