package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database. Associations
// are polymorphic: one table keyed by (tag_id, record_id, source_table)
// covers all three source tables.
type SQLiteTagRepo struct {
	db db.DBTX
}

// NewSQLiteTagRepo creates a new SQLiteTagRepo.
func NewSQLiteTagRepo(db db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: db}
}

func (r *SQLiteTagRepo) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (name, color, created_at) VALUES (?, ?, ?)`,
		name, color, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("inserting tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading tag id: %w", err)
	}
	return r.GetTag(ctx, id)
}

func (r *SQLiteTagRepo) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM tags WHERE id = ?`, id)
	return r.scanTag(row)
}

func (r *SQLiteTagRepo) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM tags WHERE LOWER(name) = LOWER(?)`, name)
	return r.scanTag(row)
}

func (r *SQLiteTagRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()
	return r.scanTags(rows)
}

// TagsFor returns the tags associated with one record, in tag id order.
func (r *SQLiteTagRepo) TagsFor(ctx context.Context, recordID int64, sourceTable string) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.color, t.created_at
		FROM tags t
		JOIN activity_tags at ON at.tag_id = t.id
		WHERE at.record_id = ? AND at.source_table = ?
		ORDER BY t.id`, recordID, sourceTable)
	if err != nil {
		return nil, fmt.Errorf("listing tags for record: %w", err)
	}
	defer rows.Close()
	return r.scanTags(rows)
}

// SetTagsFor replaces the record's full tag association.
func (r *SQLiteTagRepo) SetTagsFor(ctx context.Context, recordID int64, sourceTable string, tagIDs []int64) error {
	if err := r.DeleteTagsFor(ctx, recordID, sourceTable); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO activity_tags (tag_id, record_id, source_table) VALUES (?, ?, ?)`,
			tagID, recordID, sourceTable)
		if err != nil {
			return fmt.Errorf("associating tag %d: %w", tagID, err)
		}
	}
	return nil
}

func (r *SQLiteTagRepo) DeleteTagsFor(ctx context.Context, recordID int64, sourceTable string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_tags WHERE record_id = ? AND source_table = ?`,
		recordID, sourceTable)
	if err != nil {
		return fmt.Errorf("clearing tags for record: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) scanTag(row *sql.Row) (*domain.Tag, error) {
	var t domain.Tag
	var createdStr string
	err := row.Scan(&t.ID, &t.Name, &t.Color, &createdStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	t.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing tag created_at: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTagRepo) scanTags(rows *sql.Rows) ([]domain.Tag, error) {
	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		var createdStr string
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		created, err := time.Parse(time.RFC3339, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parsing tag created_at: %w", err)
		}
		t.CreatedAt = created
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}
