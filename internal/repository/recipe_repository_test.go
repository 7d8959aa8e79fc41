package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/internal/testutil"
	appErr "github.com/recipe-app/api/pkg/errors"
)

func recipeTitles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestRecipeCreateStoresFieldsAndLinks(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "cook@example.com")
	tags := repository.NewTagRepository(db)
	ingredients := repository.NewIngredientRepository(db)
	recipes := repository.NewRecipeRepository(db)

	vegan, err := tags.Create(ctx, u.ID, "Vegan")
	require.NoError(t, err)
	dessert, err := tags.Create(ctx, u.ID, "Dessert")
	require.NoError(t, err)
	prawns, err := ingredients.Create(ctx, u.ID, "Prawns")
	require.NoError(t, err)

	f := recipeFields(" Avocado lime cheesecake ", 60, "20.00", []uuid.UUID{vegan.ID, dessert.ID, vegan.ID}, []uuid.UUID{prawns.ID})
	link := "https://example.com/cheesecake"
	f.Link = &link

	rec, err := recipes.Create(ctx, u.ID, f)
	require.NoError(t, err)
	assert.Equal(t, "Avocado lime cheesecake", rec.Title)
	assert.Equal(t, 60, rec.TimeMinutes)
	assert.Equal(t, "20.00", rec.Price.StringFixed(2))
	assert.Equal(t, link, rec.Link)
	assert.Equal(t, u.ID, rec.UserID)
	assert.Equal(t, []string{"Vegan", "Dessert"}, tagNames(rec.Tags))
	assert.Equal(t, []string{"Prawns"}, ingredientNames(rec.Ingredients))
}

func TestRecipeCreateValidatesScalars(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "cook@example.com")
	recipes := repository.NewRecipeRepository(db)

	_, err := recipes.Create(ctx, u.ID, repository.RecipeFields{})
	requireInvalidField(t, err, "title")
	requireInvalidField(t, err, "time_minutes")
	requireInvalidField(t, err, "price")

	_, err = recipes.Create(ctx, u.ID, recipeFields("Soup", 0, "1.00", nil, nil))
	requireInvalidField(t, err, "time_minutes")

	_, err = recipes.Create(ctx, u.ID, recipeFields("Soup", 5, "-1.00", nil, nil))
	requireInvalidField(t, err, "price")

	_, err = recipes.Create(ctx, u.ID, recipeFields("Soup", 5, "1.005", nil, nil))
	requireInvalidField(t, err, "price")

	_, err = recipes.Create(ctx, u.ID, recipeFields("   ", 5, "1.00", nil, nil))
	requireInvalidField(t, err, "title")

	var rows int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&rows).Error)
	assert.Zero(t, rows, "rejected recipes are not stored")
}

func TestRecipeCreateRejectsOtherUsersReferences(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	tags := repository.NewTagRepository(db)
	ingredients := repository.NewIngredientRepository(db)
	recipes := repository.NewRecipeRepository(db)

	bobsTag, err := tags.Create(ctx, bob.ID, "Secret")
	require.NoError(t, err)
	bobsIngredient, err := ingredients.Create(ctx, bob.ID, "Saffron")
	require.NoError(t, err)

	_, err = recipes.Create(ctx, alice.ID, recipeFields("Stolen", 5, "1.00", []uuid.UUID{bobsTag.ID}, nil))
	requireInvalidField(t, err, "tags")

	_, err = recipes.Create(ctx, alice.ID, recipeFields("Stolen", 5, "1.00", nil, []uuid.UUID{bobsIngredient.ID}))
	requireInvalidField(t, err, "ingredients")

	_, err = recipes.Create(ctx, alice.ID, recipeFields("Ghost", 5, "1.00", []uuid.UUID{uuid.New()}, nil))
	requireInvalidField(t, err, "tags")

	got, err := recipes.ListByOwner(ctx, alice.ID, repository.RecipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecipeListScopedAndSortedByTitleDesc(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	recipes := repository.NewRecipeRepository(db)

	for _, title := range []string{"Apple pie", "Curry", "Banana bread"} {
		_, err := recipes.Create(ctx, alice.ID, recipeFields(title, 30, "4.00", nil, nil))
		require.NoError(t, err)
	}
	_, err := recipes.Create(ctx, bob.ID, recipeFields("Zucchini fritters", 20, "3.00", nil, nil))
	require.NoError(t, err)

	got, err := recipes.ListByOwner(ctx, alice.ID, repository.RecipeFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Curry", "Banana bread", "Apple pie"}, recipeTitles(got))
}

func TestRecipeListFiltersByTagsAndIngredients(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "cook@example.com")
	tags := repository.NewTagRepository(db)
	ingredients := repository.NewIngredientRepository(db)
	recipes := repository.NewRecipeRepository(db)

	vegan, err := tags.Create(ctx, u.ID, "Vegan")
	require.NoError(t, err)
	vegetarian, err := tags.Create(ctx, u.ID, "Vegetarian")
	require.NoError(t, err)
	feta, err := ingredients.Create(ctx, u.ID, "Feta")
	require.NoError(t, err)

	_, err = recipes.Create(ctx, u.ID, recipeFields("Thai curry", 20, "7.00", []uuid.UUID{vegan.ID}, nil))
	require.NoError(t, err)
	_, err = recipes.Create(ctx, u.ID, recipeFields("Aubergine tahini", 30, "8.00", []uuid.UUID{vegetarian.ID}, []uuid.UUID{feta.ID}))
	require.NoError(t, err)
	_, err = recipes.Create(ctx, u.ID, recipeFields("Fish and chips", 40, "9.00", nil, nil))
	require.NoError(t, err)

	got, err := recipes.ListByOwner(ctx, u.ID, repository.RecipeFilter{TagIDs: []uuid.UUID{vegan.ID, vegetarian.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai curry", "Aubergine tahini"}, recipeTitles(got))

	got, err = recipes.ListByOwner(ctx, u.ID, repository.RecipeFilter{IngredientIDs: []uuid.UUID{feta.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Aubergine tahini"}, recipeTitles(got))
}

func TestRecipeGetOwnedHidesOtherUsersRecipes(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	recipes := repository.NewRecipeRepository(db)

	rec, err := recipes.Create(ctx, bob.ID, recipeFields("Bob's stew", 90, "12.00", nil, nil))
	require.NoError(t, err)

	_, err = recipes.GetOwned(ctx, alice.ID, rec.ID)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	_, err = recipes.GetOwned(ctx, bob.ID, uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	got, err := recipes.GetOwned(ctx, bob.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob's stew", got.Title)
}

func TestRecipeUpdatePartialAndRelations(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "cook@example.com")
	tags := repository.NewTagRepository(db)
	recipes := repository.NewRecipeRepository(db)

	breakfast, err := tags.Create(ctx, u.ID, "Breakfast")
	require.NoError(t, err)
	lunch, err := tags.Create(ctx, u.ID, "Lunch")
	require.NoError(t, err)

	rec, err := recipes.Create(ctx, u.ID, recipeFields("Omelette", 10, "4.50", []uuid.UUID{breakfast.ID}, nil))
	require.NoError(t, err)

	title := "Cheese omelette"
	got, err := recipes.Update(ctx, u.ID, rec.ID, repository.RecipeFields{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Cheese omelette", got.Title)
	assert.Equal(t, 10, got.TimeMinutes)
	assert.Equal(t, []string{"Breakfast"}, tagNames(got.Tags))

	swap := []uuid.UUID{lunch.ID}
	got, err = recipes.Update(ctx, u.ID, rec.ID, repository.RecipeFields{TagIDs: &swap})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch"}, tagNames(got.Tags))

	none := []uuid.UUID{}
	got, err = recipes.Update(ctx, u.ID, rec.ID, repository.RecipeFields{TagIDs: &none})
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	price := decimal.RequireFromString("-2")
	_, err = recipes.Update(ctx, u.ID, rec.ID, repository.RecipeFields{Price: &price})
	requireInvalidField(t, err, "price")
}

func TestRecipeUpdateAndDeleteRequireOwnership(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	recipes := repository.NewRecipeRepository(db)

	rec, err := recipes.Create(ctx, bob.ID, recipeFields("Bob's stew", 90, "12.00", nil, nil))
	require.NoError(t, err)

	title := "Mine now"
	_, err = recipes.Update(ctx, alice.ID, rec.ID, repository.RecipeFields{Title: &title})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	err = recipes.DeleteOwned(ctx, alice.ID, rec.ID)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	got, err := recipes.GetOwned(ctx, bob.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob's stew", got.Title)
}

func TestRecipeDeleteKeepsTags(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "cook@example.com")
	tags := repository.NewTagRepository(db)
	recipes := repository.NewRecipeRepository(db)

	vegan, err := tags.Create(ctx, u.ID, "Vegan")
	require.NoError(t, err)
	rec, err := recipes.Create(ctx, u.ID, recipeFields("Salad", 5, "2.50", []uuid.UUID{vegan.ID}, nil))
	require.NoError(t, err)

	require.NoError(t, recipes.DeleteOwned(ctx, u.ID, rec.ID))

	_, err = recipes.GetOwned(ctx, u.ID, rec.ID)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	remaining, err := tags.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegan"}, tagNames(remaining))

	assigned, err := tags.ListAssignedByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}
