package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recipe-service/internal/api/dto"
	"github.com/spec-kit/recipe-service/internal/service"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

// RecipesHandler serves the caller's recipes.
type RecipesHandler struct {
	recipes   *service.RecipeService
	validator *dto.Validator
}

// NewRecipesHandler constructs handler.
func NewRecipesHandler(recipes *service.RecipeService, validator *dto.Validator) *RecipesHandler {
	return &RecipesHandler{recipes: recipes, validator: validator}
}

// List handles GET /api/recipe/recipes.
func (h *RecipesHandler) List(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	recipes, err := h.recipes.ListRecipes(c.UserContext(), account.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.RenderRecipes(recipes))
}

// Create handles POST /api/recipe/recipes.
func (h *RecipesHandler) Create(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	req, err := h.parse(c, false)
	if err != nil {
		return err
	}
	recipe, err := h.recipes.CreateRecipe(c.UserContext(), account.ID, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.RenderRecipe(recipe, dto.RecipeDetailFields))
}

// Get handles GET /api/recipe/recipes/:id.
func (h *RecipesHandler) Get(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	recipe, err := h.recipes.GetRecipe(c.UserContext(), account.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.RenderRecipe(recipe, dto.RecipeDetailFields))
}

// Update handles PATCH and PUT /api/recipe/recipes/:id. PUT requires the full payload.
func (h *RecipesHandler) Update(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	req, err := h.parse(c, c.Method() == fiber.MethodPatch)
	if err != nil {
		return err
	}
	recipe, err := h.recipes.UpdateRecipe(c.UserContext(), account.ID, c.Params("id"), req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.RenderRecipe(recipe, dto.RecipeDetailFields))
}

// Delete handles DELETE /api/recipe/recipes/:id.
func (h *RecipesHandler) Delete(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	if err := h.recipes.DeleteRecipe(c.UserContext(), account.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *RecipesHandler) parse(c *fiber.Ctx, partial bool) (dto.RecipeRequest, error) {
	var req dto.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(h.validator, partial); err != nil {
		return req, err
	}
	return req, nil
}
