package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/recipe-service/internal/domain"
)

// MemoryStore keeps accounts, recipes and tokens in process memory. It
// enforces the same constraints as the Postgres schema: unique emails,
// one token per account and cascade deletion from accounts.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	recipes  map[string]domain.Recipe
	tokens   map[string]domain.AuthToken
	seq      int64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]domain.Account),
		recipes:  make(map[string]domain.Recipe),
		tokens:   make(map[string]domain.AuthToken),
	}
}

// Accounts returns the account repository view.
func (s *MemoryStore) Accounts() AccountRepository { return memoryAccounts{s} }

// Recipes returns the recipe repository view.
func (s *MemoryStore) Recipes() RecipeRepository { return memoryRecipes{s} }

// Tokens returns the token repository view.
func (s *MemoryStore) Tokens() TokenRepository { return memoryTokens{s} }

// now returns strictly increasing timestamps so ordering by creation is stable.
func (s *MemoryStore) now() time.Time {
	s.seq++
	return time.Now().UTC().Add(time.Duration(s.seq))
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

type memoryAccounts struct{ s *MemoryStore }

func (m memoryAccounts) Create(_ context.Context, account *domain.Account) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.accounts {
		if existing.Email == account.Email {
			return uniqueViolation("accounts_email_key")
		}
	}
	account.ID = uuid.NewString()
	account.CreatedAt = m.s.now()
	account.UpdatedAt = account.CreatedAt
	m.s.accounts[account.ID] = *account
	return nil
}

func (m memoryAccounts) Update(_ context.Context, account *domain.Account) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range m.s.accounts {
		if id != account.ID && existing.Email == account.Email {
			return uniqueViolation("accounts_email_key")
		}
	}
	account.UpdatedAt = m.s.now()
	m.s.accounts[account.ID] = *account
	return nil
}

func (m memoryAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	account, ok := m.s.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (m memoryAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, account := range m.s.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m memoryAccounts) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.accounts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.s.accounts, id)
	for rid, recipe := range m.s.recipes {
		if recipe.OwnerID == id {
			delete(m.s.recipes, rid)
		}
	}
	for key, token := range m.s.tokens {
		if token.AccountID == id {
			delete(m.s.tokens, key)
		}
	}
	return nil
}

type memoryRecipes struct{ s *MemoryStore }

func (m memoryRecipes) Create(_ context.Context, recipe *domain.Recipe) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.accounts[recipe.OwnerID]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "recipes_owner_id_fkey", Message: "owner does not exist"}
	}
	recipe.ID = uuid.NewString()
	recipe.CreatedAt = m.s.now()
	recipe.UpdatedAt = recipe.CreatedAt
	m.s.recipes[recipe.ID] = *recipe
	return nil
}

func (m memoryRecipes) Update(_ context.Context, recipe *domain.Recipe) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	existing, ok := m.s.recipes[recipe.ID]
	if !ok || existing.OwnerID != recipe.OwnerID {
		return pgx.ErrNoRows
	}
	recipe.CreatedAt = existing.CreatedAt
	recipe.UpdatedAt = m.s.now()
	m.s.recipes[recipe.ID] = *recipe
	return nil
}

func (m memoryRecipes) GetForOwner(_ context.Context, ownerID, id string) (*domain.Recipe, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	recipe, ok := m.s.recipes[id]
	if !ok || recipe.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	return &recipe, nil
}

func (m memoryRecipes) ListByOwner(_ context.Context, ownerID string) ([]domain.Recipe, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	result := make([]domain.Recipe, 0)
	for _, recipe := range m.s.recipes {
		if recipe.OwnerID == ownerID {
			result = append(result, recipe)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m memoryRecipes) Delete(_ context.Context, ownerID, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	recipe, ok := m.s.recipes[id]
	if !ok || recipe.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(m.s.recipes, id)
	return nil
}

func (m memoryRecipes) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for id, recipe := range m.s.recipes {
		if recipe.OwnerID == ownerID {
			delete(m.s.recipes, id)
			n++
		}
	}
	return n, nil
}

type memoryTokens struct{ s *MemoryStore }

func (m memoryTokens) Create(_ context.Context, token *domain.AuthToken) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.accounts[token.AccountID]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "auth_tokens_account_id_fkey", Message: "account does not exist"}
	}
	for _, existing := range m.s.tokens {
		if existing.AccountID == token.AccountID {
			return uniqueViolation("auth_tokens_account_id_key")
		}
	}
	token.CreatedAt = m.s.now()
	m.s.tokens[token.Key] = *token
	return nil
}

func (m memoryTokens) GetByKey(_ context.Context, key string) (*domain.AuthToken, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	token, ok := m.s.tokens[key]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &token, nil
}

func (m memoryTokens) GetByAccount(_ context.Context, accountID string) (*domain.AuthToken, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, token := range m.s.tokens {
		if token.AccountID == accountID {
			found := token
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m memoryTokens) Delete(_ context.Context, key string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.tokens, key)
	return nil
}
