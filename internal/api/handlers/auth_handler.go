package handlers

import (
	"net/http"

	"github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/api/validators"
	"github.com/recipe-app/api/internal/services"
)

type AuthHandler struct {
	auth     services.AuthService
	validate *validators.Validator
}

func NewAuthHandler(auth services.AuthService, v *validators.Validator) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v}
}

// CreateUser registers a regular account.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.auth.CreateUser(r.Context(), req.Email, req.Password, services.UserExtra{Name: req.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, types.NewUserResponse(u))
}

// Token exchanges credentials for a bearer token. Bad credentials are a 400,
// as with any other invalid body.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req types.TokenRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := h.auth.IssueToken(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.TokenResponse{
		Token:     tok.AccessToken,
		TokenType: "Bearer",
		ExpiresIn: int64(tok.ExpiresIn.Seconds()),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, types.NewUserResponse(middleware.GetUser(r.Context())))
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateProfileRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.auth.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), services.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.NewUserResponse(u))
}
