//go:build integration

package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/persistence"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

var pool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase("recipes"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect: %s", err)
	}
	if err := persistence.RunMigrations(ctx, pool, zap.NewNop()); err != nil {
		log.Fatalf("failed to migrate: %s", err)
	}

	code := m.Run()

	pool.Close()
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE accounts CASCADE`)
	require.NoError(t, err)
}

func TestPostgresAccountLifecycle(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	accounts := NewAccountRepository(pool)

	acc := &domain.Account{Email: "User1@example.com", Name: "User", PasswordHash: "hash", IsActive: true}
	require.NoError(t, accounts.Create(ctx, acc))
	assert.NotEmpty(t, acc.ID)

	dup := accounts.Create(ctx, &domain.Account{Email: "User1@example.com", PasswordHash: "x"})
	require.Error(t, dup)
	de := apperrors.ToDomainError(dup)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Contains(t, de.Details, "email")

	got, err := accounts.GetByEmail(ctx, "User1@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	got.IsStaff = true
	got.IsSuperuser = true
	require.NoError(t, accounts.Update(ctx, got))

	reloaded, err := accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsStaff)
	assert.True(t, reloaded.IsSuperuser)
}

func TestPostgresCascadeDelete(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	accounts := NewAccountRepository(pool)
	recipes := NewRecipeRepository(pool)
	tokens := NewTokenRepository(pool)

	owner := &domain.Account{Email: "owner@example.com", PasswordHash: "h", IsActive: true}
	require.NoError(t, accounts.Create(ctx, owner))

	recipe := &domain.Recipe{OwnerID: owner.ID, Title: "Sample recipe name", Price: decimal.RequireFromString("5.5"), TimeMinutes: 5}
	require.NoError(t, recipes.Create(ctx, recipe))
	require.NoError(t, tokens.Create(ctx, &domain.AuthToken{Key: "key-1", AccountID: owner.ID}))

	stored, err := recipes.GetForOwner(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.50", stored.Price.StringFixed(2))

	require.NoError(t, accounts.Delete(ctx, owner.ID))

	_, err = recipes.GetForOwner(ctx, owner.ID, recipe.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = tokens.GetByKey(ctx, "key-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPostgresPriceOverflowRejected(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	owner := &domain.Account{Email: "p@example.com", PasswordHash: "h", IsActive: true}
	require.NoError(t, NewAccountRepository(pool).Create(ctx, owner))

	err := NewRecipeRepository(pool).Create(ctx, &domain.Recipe{OwnerID: owner.ID, Price: decimal.RequireFromString("1000.00"), TimeMinutes: 1})
	assert.Error(t, err)
}
