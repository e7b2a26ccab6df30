package dto

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/service"
)

// Recipe representations. The detail view is the summary field set plus
// description; rendering collapses the repeated key.
var (
	RecipeSummaryFields = []string{"id", "owner", "title", "price", "description", "time_minutes", "link"}
	RecipeDetailFields  = append(append([]string{}, RecipeSummaryFields...), "description")
)

var maxPrice = decimal.New(1, domain.PriceMaxDigits-domain.PriceDecimalPlaces)

// RecipeRequest payload for creating or updating a recipe. id and owner are never accepted.
type RecipeRequest struct {
	Title       *string          `json:"title" validate:"omitnil,nomarkup"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitnil,nomarkup"`
	TimeMinutes *int             `json:"time_minutes"`
	Link        *string          `json:"link" validate:"omitnil,max=255"`
}

// Validate checks field constraints. With partial=false every required field must be present.
func (r RecipeRequest) Validate(v *Validator, partial bool) error {
	err := v.Struct(r)
	extra := map[string][]string{}
	if !partial {
		if r.TimeMinutes == nil {
			extra["time_minutes"] = append(extra["time_minutes"], "This field is required.")
		}
		if r.Price == nil {
			extra["price"] = append(extra["price"], "This field is required.")
		}
	}
	if r.TimeMinutes != nil {
		if msg := timeMinutesError(*r.TimeMinutes); msg != "" {
			extra["time_minutes"] = append(extra["time_minutes"], msg)
		}
	}
	if r.Price != nil {
		if msg := priceError(*r.Price); msg != "" {
			extra["price"] = append(extra["price"], msg)
		}
	}
	return mergeDetails(err, extra)
}

// timeMinutesError keeps the value inside the INTEGER column range.
func timeMinutesError(n int) string {
	switch {
	case n > math.MaxInt32:
		return fmt.Sprintf("Ensure this value is less than or equal to %d.", math.MaxInt32)
	case n < math.MinInt32:
		return fmt.Sprintf("Ensure this value is greater than or equal to %d.", math.MinInt32)
	}
	return ""
}

func priceError(p decimal.Decimal) string {
	if !p.Round(domain.PriceDecimalPlaces).Equal(p) {
		return "Ensure that there are no more than 2 decimal places."
	}
	if p.Abs().GreaterThanOrEqual(maxPrice) {
		return "Ensure that there are no more than 5 digits in total."
	}
	return ""
}

// ToInput converts the request to service input.
func (r RecipeRequest) ToInput() service.RecipeInput {
	return service.RecipeInput{
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		TimeMinutes: r.TimeMinutes,
		Link:        r.Link,
	}
}

// RenderRecipe returns the named fields of recipe.
func RenderRecipe(recipe *domain.Recipe, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f {
		case "id":
			out[f] = recipe.ID
		case "owner":
			out[f] = recipe.OwnerID
		case "title":
			out[f] = recipe.Title
		case "price":
			out[f] = recipe.Price.StringFixed(domain.PriceDecimalPlaces)
		case "description":
			out[f] = recipe.Description
		case "time_minutes":
			out[f] = recipe.TimeMinutes
		case "link":
			out[f] = recipe.Link
		}
	}
	return out
}

// RenderRecipes renders a list with the summary field set.
func RenderRecipes(recipes []domain.Recipe) []map[string]any {
	out := make([]map[string]any, 0, len(recipes))
	for i := range recipes {
		out = append(out, RenderRecipe(&recipes[i], RecipeSummaryFields))
	}
	return out
}
