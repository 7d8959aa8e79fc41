//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/pkg/database"
	appErr "github.com/recipe-app/api/pkg/errors"
)

// TestPostgresRepositories runs the storage layer against a real Postgres.
// Run with: go test -tags integration ./pkg/database/...
func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("recipes"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, database.Options{Driver: "postgres", DSN: dsn, MaxRetries: 5})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	tags := repository.NewTagRepository(db)
	recipes := repository.NewRecipeRepository(db)

	u := &models.User{Email: "pg@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, users.Create(ctx, u))
	err = users.Create(ctx, &models.User{Email: "pg@example.com", PasswordHash: "y", IsActive: true})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid), "duplicate email must be a validation error, got %v", err)

	breakfast, err := tags.Create(ctx, u.ID, "Breakfast")
	require.NoError(t, err)
	_, err = tags.Create(ctx, u.ID, "Lunch")
	require.NoError(t, err)

	title := "Porridge"
	minutes := 5
	price := decimal.RequireFromString("1.25")
	ids := []uuid.UUID{breakfast.ID}
	rec, err := recipes.Create(ctx, u.ID, repository.RecipeFields{Title: &title, TimeMinutes: &minutes, Price: &price, TagIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, "1.25", rec.Price.StringFixed(2))

	assigned, err := tags.ListAssignedByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Breakfast", assigned[0].Name)

	require.NoError(t, users.DeleteCascade(ctx, u.ID))
	left, err := tags.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
