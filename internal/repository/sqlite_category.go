package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(db db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: db}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, name, color string) (*domain.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, color, created_at) VALUES (?, ?, ?)`,
		name, color, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading category id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM categories WHERE id = ?`, id)
	return r.scanCategory(row)
}

func (r *SQLiteCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM categories WHERE name = ?`, name)
	return r.scanCategory(row)
}

func (r *SQLiteCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		var createdStr string
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		c.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parsing category created_at: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteCategoryRepo) scanCategory(row *sql.Row) (*domain.Category, error) {
	var c domain.Category
	var createdStr string
	err := row.Scan(&c.ID, &c.Name, &c.Color, &createdStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing category created_at: %w", err)
	}
	return &c, nil
}
