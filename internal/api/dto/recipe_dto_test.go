package dto

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recipe-service/internal/domain"
)

var accountFixture = domain.Account{
	ID:           "acc-1",
	Email:        "test@example.com",
	Name:         "Test",
	PasswordHash: "$2a$hash",
	IsActive:     true,
}

func ptr[T any](v T) *T { return &v }

func TestRecipeFieldSets(t *testing.T) {
	assert.Equal(t, []string{"id", "owner", "title", "price", "description", "time_minutes", "link"}, RecipeSummaryFields)
	for _, f := range RecipeSummaryFields {
		assert.Contains(t, RecipeDetailFields, f)
	}
	assert.Contains(t, RecipeDetailFields, "description")
}

func TestRenderRecipe(t *testing.T) {
	recipe := &domain.Recipe{
		ID:          "rec-1",
		OwnerID:     "acc-1",
		Title:       "Sample recipe",
		Price:       decimal.RequireFromString("5.5"),
		Description: "Sample description",
		TimeMinutes: 22,
		Link:        "http://example.com/recipe.pdf",
	}

	summary := RenderRecipe(recipe, RecipeSummaryFields)
	assert.Len(t, summary, 7)
	assert.Equal(t, "5.50", summary["price"])
	assert.Equal(t, "acc-1", summary["owner"])
	assert.Equal(t, 22, summary["time_minutes"])

	detail := RenderRecipe(recipe, RecipeDetailFields)
	assert.Len(t, detail, 7)
	for k := range summary {
		assert.Contains(t, detail, k)
	}
	assert.Equal(t, "Sample description", detail["description"])
}

func TestRenderRecipesUsesSummaryView(t *testing.T) {
	out := RenderRecipes([]domain.Recipe{{ID: "a"}, {ID: "b"}})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0]["id"])
	assert.Equal(t, "0.00", out[1]["price"])
}

func TestRecipeRequestValidate(t *testing.T) {
	v := NewValidator(5)

	full := RecipeRequest{Title: ptr("Soup"), Price: ptr(decimal.RequireFromString("5.25")), TimeMinutes: ptr(10)}
	require.NoError(t, full.Validate(v, false))
	require.NoError(t, RecipeRequest{}.Validate(v, true))

	details := fieldMessages(t, RecipeRequest{Title: ptr("Soup")}.Validate(v, false))
	assert.Equal(t, []string{"This field is required."}, details["time_minutes"])
	assert.Equal(t, []string{"This field is required."}, details["price"])

	details = fieldMessages(t, RecipeRequest{Price: ptr(decimal.RequireFromString("1.005"))}.Validate(v, true))
	assert.Equal(t, []string{"Ensure that there are no more than 2 decimal places."}, details["price"])

	details = fieldMessages(t, RecipeRequest{Price: ptr(decimal.RequireFromString("1000"))}.Validate(v, true))
	assert.Equal(t, []string{"Ensure that there are no more than 5 digits in total."}, details["price"])

	require.NoError(t, RecipeRequest{Price: ptr(decimal.RequireFromString("999.99"))}.Validate(v, true))

	details = fieldMessages(t, RecipeRequest{Link: ptr(strings.Repeat("l", 256))}.Validate(v, true))
	assert.Equal(t, []string{"Ensure this field has no more than 255 characters."}, details["link"])
}

func TestRecipeRequestTimeMinutesRange(t *testing.T) {
	v := NewValidator(5)
	require.NoError(t, RecipeRequest{TimeMinutes: ptr(math.MaxInt32)}.Validate(v, true))
	require.NoError(t, RecipeRequest{TimeMinutes: ptr(math.MinInt32)}.Validate(v, true))

	details := fieldMessages(t, RecipeRequest{TimeMinutes: ptr(3000000000)}.Validate(v, true))
	assert.Equal(t, []string{"Ensure this value is less than or equal to 2147483647."}, details["time_minutes"])

	details = fieldMessages(t, RecipeRequest{TimeMinutes: ptr(-3000000000)}.Validate(v, true))
	assert.Equal(t, []string{"Ensure this value is greater than or equal to -2147483648."}, details["time_minutes"])
}

func TestRecipeRequestRejectsMarkup(t *testing.T) {
	v := NewValidator(5)
	details := fieldMessages(t, RecipeRequest{Title: ptr("Mac<cheese>"), Description: ptr("<p>Hot</p>")}.Validate(v, true))
	assert.Equal(t, []string{"HTML markup is not allowed."}, details["title"])
	assert.Equal(t, []string{"HTML markup is not allowed."}, details["description"])
}

func TestRecipeRequestToInputKeepsText(t *testing.T) {
	req := RecipeRequest{
		Title:       ptr("Fish & Chips <3"),
		Description: ptr("Fry at < 180C"),
		TimeMinutes: ptr(5),
	}
	input := req.ToInput()
	require.NotNil(t, input.Title)
	assert.Equal(t, "Fish & Chips <3", *input.Title)
	require.NotNil(t, input.Description)
	assert.Equal(t, "Fry at < 180C", *input.Description)
	assert.Equal(t, 5, *input.TimeMinutes)
	assert.Nil(t, input.Link)
}
