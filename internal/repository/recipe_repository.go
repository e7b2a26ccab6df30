package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/recipe-service/internal/domain"
)

// RecipeRepository encapsulates recipe persistence. Every lookup is scoped to an owner.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, recipe *domain.Recipe) error
	GetForOwner(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type recipeRepository struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository instantiates repository.
func NewRecipeRepository(pool *pgxpool.Pool) RecipeRepository {
	return &recipeRepository{pool: pool}
}

const recipeColumns = `id, owner_id, title, price::text, description, time_minutes, link, created_at, updated_at`

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	const query = `
        INSERT INTO recipes (owner_id, title, price, description, time_minutes, link)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		recipe.OwnerID,
		recipe.Title,
		recipe.Price.String(),
		recipe.Description,
		recipe.TimeMinutes,
		recipe.Link,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
}

func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	const query = `
        UPDATE recipes SET title=$1, price=$2, description=$3, time_minutes=$4, link=$5, updated_at=NOW()
        WHERE id=$6 AND owner_id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		recipe.Title,
		recipe.Price.String(),
		recipe.Description,
		recipe.TimeMinutes,
		recipe.Link,
		recipe.ID,
		recipe.OwnerID,
	).Scan(&recipe.UpdatedAt)
}

func (r *recipeRepository) GetForOwner(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id=$1 AND owner_id=$2`
	return scanRecipe(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *recipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE owner_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *recipe)
	}
	return result, rows.Err()
}

func (r *recipeRepository) Delete(ctx context.Context, ownerID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *recipeRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE owner_id=$1`, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var (
		recipe domain.Recipe
		price  string
	)
	if err := row.Scan(
		&recipe.ID,
		&recipe.OwnerID,
		&recipe.Title,
		&price,
		&recipe.Description,
		&recipe.TimeMinutes,
		&recipe.Link,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse recipe price %q: %w", price, err)
	}
	recipe.Price = parsed
	return &recipe, nil
}
