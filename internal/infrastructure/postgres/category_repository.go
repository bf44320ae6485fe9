package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, user_id, parent_id, name, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.UserID, nullIfEmpty(category.ParentID),
		category.Name, category.Level, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría del usuario.
func (r *CategoryRepo) GetByID(userID, id string) (*entity.Category, error) {
	query := `
		SELECT id, user_id, COALESCE(parent_id, ''), name, level, created_at, updated_at
		FROM categories WHERE user_id = $1 AND id = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&c.ID, &c.UserID, &c.ParentID, &c.Name, &c.Level, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByUser lista categorías del usuario ordenadas por nivel y nombre.
func (r *CategoryRepo) ListByUser(userID string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, user_id, COALESCE(parent_id, ''), name, level, created_at, updated_at
		FROM categories WHERE user_id = $1 ORDER BY level, name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// ListByParent lista los hijos directos de una categoría.
func (r *CategoryRepo) ListByParent(userID, parentID string) ([]*entity.Category, error) {
	query := `
		SELECT id, user_id, COALESCE(parent_id, ''), name, level, created_at, updated_at
		FROM categories WHERE user_id = $1 AND parent_id = $2 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories by parent: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// Update actualiza el nombre de una categoría del usuario.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, updated_at = $4
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		category.UserID, category.ID, category.Name, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina una categoría del usuario.
func (r *CategoryRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.ParentID, &c.Name, &c.Level, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
