package handlers

import (
	"net/http"

	"github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/api/validators"
	"github.com/recipe-app/api/internal/services"
)

// AdminHandler exposes account management to staff users.
type AdminHandler struct {
	svc      services.AdminService
	validate *validators.Validator
}

func NewAdminHandler(svc services.AdminService, v *validators.Validator) *AdminHandler {
	return &AdminHandler{svc: svc, validate: v}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, r, types.NewAdminUserList(users))
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewAdminUserResponse(u))
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req types.AdminCreateUserRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	u, err := h.svc.CreateUser(r.Context(), req.Email, req.Password, services.UserExtra{
		Name:        req.Name,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, types.NewAdminUserResponse(u))
}

// UpdateUser applies a partial change; deactivated users lose API access at
// their next request.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		writeError(w, err)
		return
	}
	var req types.AdminUpdateUserRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}
	u, err := h.svc.UpdateUser(r.Context(), middleware.GetUserID(r.Context()), id, services.AdminUserUpdate{
		Name:        req.Name,
		Password:    req.Password,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewAdminUserResponse(u))
}

// DeleteUser removes the account along with its tags, ingredients and recipes.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
