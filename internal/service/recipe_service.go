package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

// RecipeInput describes recipe fields supplied by the owner. Nil fields are
// left untouched on update.
type RecipeInput struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
	TimeMinutes *int
	Link        *string
}

// RecipeService coordinates owner-scoped recipe workflows.
type RecipeService struct {
	recipes    repository.RecipeRepository
	dispatcher events.Dispatcher
}

// NewRecipeService constructs the service.
func NewRecipeService(recipes repository.RecipeRepository, dispatcher events.Dispatcher) *RecipeService {
	return &RecipeService{recipes: recipes, dispatcher: dispatcher}
}

// CreateRecipe stores a recipe owned by ownerID. Time and price are required.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID string, input RecipeInput) (*domain.Recipe, error) {
	details := map[string]any{}
	if input.TimeMinutes == nil {
		details["time_minutes"] = []string{"This field is required."}
	}
	if input.Price == nil {
		details["price"] = []string{"This field is required."}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid recipe", details)
	}

	recipe := &domain.Recipe{OwnerID: ownerID}
	applyRecipeInput(recipe, input)
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRecipeCreated,
		AccountID: ownerID,
		Payload:   events.RecipePayload{RecipeID: recipe.ID, Title: recipe.Title},
	})
	return recipe, nil
}

// ListRecipes returns the owner's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	return s.recipes.ListByOwner(ctx, ownerID)
}

// GetRecipe returns one of the owner's recipes. Other owners' recipes are reported as missing.
func (s *RecipeService) GetRecipe(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	if !validRecipeID(id) {
		return nil, apperrors.NewNotFound("recipe", nil)
	}
	recipe, err := s.recipes.GetForOwner(ctx, ownerID, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("recipe", nil)
		}
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe applies the provided fields to one of the owner's recipes.
func (s *RecipeService) UpdateRecipe(ctx context.Context, ownerID, id string, input RecipeInput) (*domain.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	applyRecipeInput(recipe, input)
	if err := s.recipes.Update(ctx, recipe); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("recipe", nil)
		}
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes one of the owner's recipes.
func (s *RecipeService) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	if !validRecipeID(id) {
		return apperrors.NewNotFound("recipe", nil)
	}
	if err := s.recipes.Delete(ctx, ownerID, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("recipe", nil)
		}
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRecipeDeleted,
		AccountID: ownerID,
		Payload:   events.RecipePayload{RecipeID: id},
	})
	return nil
}

// validRecipeID reports whether id can name a stored recipe. Anything else
// would fail to encode as a UUID column value.
func validRecipeID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func applyRecipeInput(recipe *domain.Recipe, input RecipeInput) {
	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}
}

func (s *RecipeService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
