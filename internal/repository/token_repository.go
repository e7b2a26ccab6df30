package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recipe-service/internal/domain"
)

// TokenRepository stores issued auth tokens, one per account.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.AuthToken) error
	GetByKey(ctx context.Context, key string) (*domain.AuthToken, error)
	GetByAccount(ctx context.Context, accountID string) (*domain.AuthToken, error)
	Delete(ctx context.Context, key string) error
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository constructs repository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	const query = `
        INSERT INTO auth_tokens (key, account_id)
        VALUES ($1,$2)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query, token.Key, token.AccountID).Scan(&token.CreatedAt)
}

func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	const query = `SELECT key, account_id, created_at FROM auth_tokens WHERE key=$1`
	var token domain.AuthToken
	if err := r.pool.QueryRow(ctx, query, key).Scan(&token.Key, &token.AccountID, &token.CreatedAt); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) GetByAccount(ctx context.Context, accountID string) (*domain.AuthToken, error) {
	const query = `SELECT key, account_id, created_at FROM auth_tokens WHERE account_id=$1`
	var token domain.AuthToken
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&token.Key, &token.AccountID, &token.CreatedAt); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Delete(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE key=$1`, key)
	return err
}
