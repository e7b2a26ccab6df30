package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups the persistence ports used by the services.
type Repositories struct {
	Accounts AccountRepository
	Recipes  RecipeRepository
	Tokens   TokenRepository
}

// NewPostgresRepositories returns Postgres-backed repositories sharing pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Accounts: NewAccountRepository(pool),
		Recipes:  NewRecipeRepository(pool),
		Tokens:   NewTokenRepository(pool),
	}
}

// Repositories returns the in-memory repositories.
func (s *MemoryStore) Repositories() Repositories {
	return Repositories{
		Accounts: s.Accounts(),
		Recipes:  s.Recipes(),
		Tokens:   s.Tokens(),
	}
}
