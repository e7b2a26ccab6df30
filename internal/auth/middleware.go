package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Account  *domain.Account
	TokenKey string
}

// TokenMiddleware validates presented tokens against the token store and loads the account.
type TokenMiddleware struct {
	tokens   *TokenManager
	store    repository.TokenRepository
	accounts repository.AccountRepository
}

// NewTokenMiddleware constructs middleware.
func NewTokenMiddleware(tokens *TokenManager, store repository.TokenRepository, accounts repository.AccountRepository) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens, store: store, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *TokenMiddleware) Handle(c *fiber.Ctx) error {
	key, err := tokenFromHeader(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseToken(key)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	stored, err := m.store.GetByKey(c.UserContext(), key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewUnauthorized("invalid token")
		}
		return apperrors.MapError(err)
	}
	if stored.AccountID != claims.AccountID {
		return apperrors.NewUnauthorized("invalid token")
	}

	account, err := m.accounts.GetByID(c.UserContext(), stored.AccountID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewUnauthorized("account inactive or deleted")
		}
		return apperrors.MapError(err)
	}
	if !account.IsActive {
		return apperrors.NewUnauthorized("account inactive or deleted")
	}

	c.Locals(principalKey, &Principal{Account: account, TokenKey: key})
	return c.Next()
}

// tokenFromHeader accepts "Token <key>" and "Bearer <key>".
func tokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("authentication credentials were not provided")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	if !strings.EqualFold(parts[0], "Token") && !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
