package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

// RequireAccount ensures an account principal is present.
func RequireAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Account == nil {
			return apperrors.NewUnauthorized("authentication credentials were not provided")
		}
		return c.Next()
	}
}

// AllowMethods rejects any method outside the given set with 405.
// Guards registered before it still run first, so unauthenticated
// callers get 401 rather than 405.
func AllowMethods(methods ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[c.Method()]; !ok {
			return apperrors.NewMethodNotAllowed(c.Method())
		}
		return c.Next()
	}
}
