package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

type middlewareFixture struct {
	app     *fiber.App
	store   *repository.MemoryStore
	tokens  *TokenManager
	account *domain.Account
	key     string
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	tokens := NewTokenManager("secret", 5)

	account := &domain.Account{Email: "test@example.com", Name: "Test", IsActive: true}
	require.NoError(t, store.Accounts().Create(ctx, account))

	key, _, err := tokens.GenerateToken(account.ID)
	require.NoError(t, err)
	require.NoError(t, store.Tokens().Create(ctx, &domain.AuthToken{Key: key, AccountID: account.ID}))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := NewTokenMiddleware(tokens, store.Tokens(), store.Accounts())
	group := app.Group("/me", mw.Handle, RequireAccount())
	group.Get("", func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"email": p.Account.Email})
	})
	group.All("", AllowMethods(fiber.MethodGet))

	return &middlewareFixture{app: app, store: store, tokens: tokens, account: account, key: key}
}

func (f *middlewareFixture) do(t *testing.T, method, header string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestTokenMiddleware(t *testing.T) {
	f := newMiddlewareFixture(t)

	t.Run("token scheme accepted", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, "Token "+f.key)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "test@example.com", body["email"])
	})

	t.Run("bearer scheme accepted", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "Bearer "+f.key).StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "").StatusCode)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "Basic "+f.key).StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "Token abc").StatusCode)
	})

	t.Run("signed but never stored", func(t *testing.T) {
		other, _, err := f.tokens.GenerateToken(f.account.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "Token "+other).StatusCode)
	})

	t.Run("unsupported method after auth", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, f.do(t, http.MethodPost, "Token "+f.key).StatusCode)
	})

	t.Run("unsupported method without auth", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "").StatusCode)
	})
}

func TestTokenMiddlewareInactiveAccount(t *testing.T) {
	f := newMiddlewareFixture(t)
	f.account.IsActive = false
	require.NoError(t, f.store.Accounts().Update(context.Background(), f.account))

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "Token "+f.key).StatusCode)
}

func TestTokenMiddlewareRevokedToken(t *testing.T) {
	f := newMiddlewareFixture(t)
	require.NoError(t, f.store.Tokens().Delete(context.Background(), f.key))

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "Token "+f.key).StatusCode)
}
