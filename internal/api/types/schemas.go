package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/recipe-app/api/internal/models"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// AdminUserResponse adds the account flags staff can see.
type AdminUserResponse struct {
	UserResponse
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// NamedResponse is the wire form of tags and ingredients.
type NamedResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeResponse is the list form: related records by id.
type RecipeResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	TimeMinutes int         `json:"time_minutes"`
	Price       string      `json:"price"`
	Link        string      `json:"link"`
	Tags        []uuid.UUID `json:"tags"`
	Ingredients []uuid.UUID `json:"ingredients"`
}

// RecipeDetailResponse nests the related records.
type RecipeDetailResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       string          `json:"price"`
	Link        string          `json:"link"`
	Tags        []NamedResponse `json:"tags"`
	Ingredients []NamedResponse `json:"ingredients"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func NewAdminUserResponse(u *models.User) AdminUserResponse {
	return AdminUserResponse{
		UserResponse: NewUserResponse(u),
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		CreatedAt:    u.CreatedAt,
	}
}

func NewAdminUserList(users []models.User) []AdminUserResponse {
	out := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewAdminUserResponse(&users[i]))
	}
	return out
}

func NewNamedResponse(rec *models.NamedRecord) NamedResponse {
	return NamedResponse{ID: rec.ID, Name: rec.Name}
}

// NewNamedList maps tags or ingredients to their wire form. Never returns nil.
func NewNamedList[T any, PT models.Owned[T]](items []T) []NamedResponse {
	out := make([]NamedResponse, 0, len(items))
	for i := range items {
		out = append(out, NewNamedResponse(PT(&items[i]).Record()))
	}
	return out
}

func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	out := RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        make([]uuid.UUID, 0, len(r.Tags)),
		Ingredients: make([]uuid.UUID, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, i.ID)
	}
	return out
}

func NewRecipeList(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}

func NewRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        NewNamedList(r.Tags),
		Ingredients: NewNamedList(r.Ingredients),
	}
}
