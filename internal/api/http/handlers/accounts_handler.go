package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recipe-service/internal/api/dto"
	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/service"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

// AccountsHandler exposes registration, token issuance and the profile endpoint.
type AccountsHandler struct {
	accounts  *service.AccountService
	auth      *service.AuthService
	validator *dto.Validator
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService, authService *service.AuthService, validator *dto.Validator) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, auth: authService, validator: validator}
}

// Create handles POST /api/user/create.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	var req dto.AccountCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	account, err := h.accounts.CreateAccount(c.UserContext(), req.Email, req.Password, service.AccountFields{
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAccountResponse(account))
}

// Token handles POST /api/user/token.
func (h *AccountsHandler) Token(c *fiber.Ctx) error {
	var req dto.CredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.UserContext(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// Me handles GET /api/user/me.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(account))
}

// UpdateMe handles PATCH and PUT /api/user/me.
func (h *AccountsHandler) UpdateMe(c *fiber.Ctx) error {
	account, err := currentAccount(c)
	if err != nil {
		return err
	}

	var req dto.AccountUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	updated, err := h.accounts.UpdateAccount(c.UserContext(), account.ID, service.AccountPatch{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(updated))
}

func currentAccount(c *fiber.Ctx) (*domain.Account, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return nil, apperrors.NewUnauthorized("authentication credentials were not provided")
	}
	return principal.Account, nil
}
