package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name" validate:"max=255"`
}

type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5"`
}

type NamedRequest struct {
	Name string `json:"name" validate:"max=255"`
}

// RecipeRequest is the body of recipe create, replace and partial update.
// Pointer fields distinguish "absent" from zero values.
type RecipeRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" validate:"omitempty,max=255,url"`
	Tags        *[]uuid.UUID     `json:"tags"`
	Ingredients *[]uuid.UUID     `json:"ingredients"`
}

// AdminCreateUserRequest lets staff create accounts with any flags.
// is_active defaults to true when omitted.
type AdminCreateUserRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=5"`
	Name        string `json:"name" validate:"max=255"`
	IsActive    *bool  `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type AdminUpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=5"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}
