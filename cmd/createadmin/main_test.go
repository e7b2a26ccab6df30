package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/repository"
	"github.com/spec-kit/recipe-service/internal/service"
)

func newAccounts(store *repository.MemoryStore) *service.AccountService {
	return service.NewAccountService(service.AccountDependencies{
		AccountRepo: store.Accounts(),
		RecipeRepo:  store.Recipes(),
		Dispatcher:  events.NewInMemoryDispatcher(),
		BcryptCost:  bcrypt.MinCost,
	})
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-email", "admin@example.com", "-password", "secret"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{email: "admin@example.com", password: "secret"}, opts)

	_, err = parseFlags([]string{"-password", "secret"}, io.Discard)
	assert.Error(t, err)
}

func TestExecuteCreatesSuperuser(t *testing.T) {
	store := repository.NewMemoryStore()
	var out bytes.Buffer

	err := execute(context.Background(), options{email: "Admin@EXAMPLE.com", password: "test123"}, newAccounts(store), strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Admin@example.com")

	account, err := store.Accounts().GetByEmail(context.Background(), "Admin@example.com")
	require.NoError(t, err)
	assert.True(t, account.IsStaff)
	assert.True(t, account.IsSuperuser)
	assert.NoError(t, auth.ComparePassword(account.PasswordHash, "test123"))
}

func TestExecuteReadsPasswordFromStdin(t *testing.T) {
	store := repository.NewMemoryStore()
	err := execute(context.Background(), options{email: "admin@example.com"}, newAccounts(store), strings.NewReader("piped-pass\n"), io.Discard)
	require.NoError(t, err)

	account, err := store.Accounts().GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(account.PasswordHash, "piped-pass"))
}

func TestExecuteDeletesAccountAndRecipes(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	accounts := newAccounts(store)
	account, err := accounts.CreateAccount(ctx, "user@example.com", "test123", service.AccountFields{})
	require.NoError(t, err)
	require.NoError(t, store.Recipes().Create(ctx, &domain.Recipe{OwnerID: account.ID, Title: "Soup", TimeMinutes: 5}))

	var out bytes.Buffer
	require.NoError(t, execute(ctx, options{email: "user@example.com", delete: true}, accounts, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "deleted")

	_, err = store.Accounts().GetByID(ctx, account.ID)
	assert.Error(t, err)
	recipes, err := store.Recipes().ListByOwner(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestExecuteMissingEmailFails(t *testing.T) {
	store := repository.NewMemoryStore()
	err := execute(context.Background(), options{email: "   ", password: "x"}, newAccounts(store), strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}

func TestPromptPasswordUsesTerminal(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var out bytes.Buffer
	pw, err := promptPassword(r, &out)
	require.NoError(t, err)
	assert.Equal(t, "hidden", pw)
	assert.Contains(t, out.String(), "Password: ")
}
