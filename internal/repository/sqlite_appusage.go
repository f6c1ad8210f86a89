package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/domain"
)

const appUsageColumns = `a.id, a.app_name, a.window_title, a.domain, a.url,
		a.is_browser, a.is_idle, a.category_id, a.category,
		a.start_time, a.end_time, a.duration_sec, a.created_at,
		c.id, c.name, c.color`

const appUsageCategoryJoin = `LEFT JOIN categories c
		ON (a.category_id = c.id)
		OR (a.category_id IS NULL AND a.category != '' AND c.name = a.category)`

// SQLiteAppUsageRepo implements AppUsageRepo using a SQLite database.
type SQLiteAppUsageRepo struct {
	db db.DBTX
}

// NewSQLiteAppUsageRepo creates a new SQLiteAppUsageRepo.
func NewSQLiteAppUsageRepo(db db.DBTX) *SQLiteAppUsageRepo {
	return &SQLiteAppUsageRepo{db: db}
}

func (r *SQLiteAppUsageRepo) Create(ctx context.Context, u *domain.AppUsage) error {
	query := `INSERT INTO app_usage (app_name, window_title, domain, url, is_browser, is_idle,
		category_id, category, start_time, end_time, duration_sec, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, query,
		u.AppName,
		u.WindowTitle,
		u.Domain,
		u.URL,
		boolToInt(u.IsBrowser),
		boolToInt(u.IsIdle),
		nullableInt64ToValue(u.CategoryID),
		u.Category,
		utcString(u.StartTime),
		nullableTimeToValue(u.EndTime),
		u.DurationSec,
		utcString(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting app usage: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading app usage id: %w", err)
	}
	u.ID = id
	return nil
}

func (r *SQLiteAppUsageRepo) GetByID(ctx context.Context, id int64) (*domain.AppUsage, error) {
	query := fmt.Sprintf(`SELECT %s FROM app_usage a %s WHERE a.id = ?`,
		appUsageColumns, appUsageCategoryJoin)
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanUsage(row)
}

// ListInRange returns completed captures overlapping the [start, end) window.
func (r *SQLiteAppUsageRepo) ListInRange(ctx context.Context, start, end time.Time) ([]*domain.AppUsage, error) {
	query := fmt.Sprintf(`SELECT %s FROM app_usage a %s
		WHERE a.end_time IS NOT NULL AND a.start_time < ? AND a.end_time > ?
		ORDER BY a.start_time`,
		appUsageColumns, appUsageCategoryJoin)
	rows, err := r.db.QueryContext(ctx, query,
		utcString(end), utcString(start))
	if err != nil {
		return nil, fmt.Errorf("listing app usage in range: %w", err)
	}
	defer rows.Close()
	return r.scanUsages(rows)
}

func (r *SQLiteAppUsageRepo) Update(ctx context.Context, id int64, u AppUsageUpdate) error {
	var sets []string
	var args []any
	if u.StartTime != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, utcString(*u.StartTime))
	}
	if u.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, utcString(*u.EndTime))
	}
	if u.DurationSec != nil {
		sets = append(sets, "duration_sec = ?")
		args = append(args, *u.DurationSec)
	}
	if u.CategorySet {
		sets = append(sets, "category_id = ?", "category = ''")
		args = append(args, nullableInt64ToValue(u.CategoryID))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE app_usage SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating app usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking app usage update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("app usage %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAppUsageRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM app_usage WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting app usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking app usage delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("app usage %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAppUsageRepo) scanUsage(row *sql.Row) (*domain.AppUsage, error) {
	var u domain.AppUsage
	var categoryID, joinedCatID sql.NullInt64
	var endStr, joinedCatName, joinedCatColor sql.NullString
	var startStr, createdStr string
	var isBrowser, isIdle int

	err := row.Scan(
		&u.ID, &u.AppName, &u.WindowTitle, &u.Domain, &u.URL,
		&isBrowser, &isIdle, &categoryID, &u.Category,
		&startStr, &endStr, &u.DurationSec, &createdStr,
		&joinedCatID, &joinedCatName, &joinedCatColor,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("app usage: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning app usage: %w", err)
	}
	return r.populateUsage(&u, categoryID, joinedCatID, joinedCatName, joinedCatColor, isBrowser, isIdle, startStr, endStr, createdStr)
}

func (r *SQLiteAppUsageRepo) scanUsages(rows *sql.Rows) ([]*domain.AppUsage, error) {
	var usages []*domain.AppUsage
	for rows.Next() {
		var u domain.AppUsage
		var categoryID, joinedCatID sql.NullInt64
		var endStr, joinedCatName, joinedCatColor sql.NullString
		var startStr, createdStr string
		var isBrowser, isIdle int

		err := rows.Scan(
			&u.ID, &u.AppName, &u.WindowTitle, &u.Domain, &u.URL,
			&isBrowser, &isIdle, &categoryID, &u.Category,
			&startStr, &endStr, &u.DurationSec, &createdStr,
			&joinedCatID, &joinedCatName, &joinedCatColor,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning app usage row: %w", err)
		}
		usage, err := r.populateUsage(&u, categoryID, joinedCatID, joinedCatName, joinedCatColor, isBrowser, isIdle, startStr, endStr, createdStr)
		if err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating app usage: %w", err)
	}
	return usages, nil
}

func (r *SQLiteAppUsageRepo) populateUsage(u *domain.AppUsage, categoryID, joinedCatID sql.NullInt64, joinedCatName, joinedCatColor sql.NullString, isBrowser, isIdle int, startStr string, endStr sql.NullString, createdStr string) (*domain.AppUsage, error) {
	var parseErr error
	u.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	u.EndTime = parseNullableTime(endStr, time.RFC3339)
	u.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	u.IsBrowser = intToBool(isBrowser)
	u.IsIdle = intToBool(isIdle)
	if categoryID.Valid {
		u.CategoryID = &categoryID.Int64
	} else if joinedCatID.Valid {
		u.CategoryID = &joinedCatID.Int64
	}
	if joinedCatName.Valid {
		u.CategoryName = joinedCatName.String
	}
	if joinedCatColor.Valid {
		u.CategoryColor = joinedCatColor.String
	}
	return u, nil
}
