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

// timeEntryColumns is the canonical SELECT column list for time_entries
// joined against categories. The join resolves the category by id, or by
// legacy name for rows written before the categories table existed.
const timeEntryColumns = `t.id, t.task, t.category_id, t.category,
		t.start_time, t.end_time, t.duration_sec, t.created_at,
		c.id, c.name, c.color`

const timeEntryCategoryJoin = `LEFT JOIN categories c
		ON (t.category_id = c.id)
		OR (t.category_id IS NULL AND t.category != '' AND c.name = t.category)`

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(db db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: db}
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (task, category_id, category, start_time, end_time, duration_sec, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, query,
		e.Task,
		nullableInt64ToValue(e.CategoryID),
		e.Category,
		utcString(e.StartTime),
		nullableTimeToValue(e.EndTime),
		e.DurationSec,
		utcString(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading time entry id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM time_entries t %s WHERE t.id = ?`,
		timeEntryColumns, timeEntryCategoryJoin)
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

// ListInRange returns completed entries overlapping the [start, end) window.
func (r *SQLiteTimeEntryRepo) ListInRange(ctx context.Context, start, end time.Time) ([]*domain.TimeEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM time_entries t %s
		WHERE t.end_time IS NOT NULL AND t.start_time < ? AND t.end_time > ?
		ORDER BY t.start_time`,
		timeEntryColumns, timeEntryCategoryJoin)
	rows, err := r.db.QueryContext(ctx, query,
		utcString(end), utcString(start))
	if err != nil {
		return nil, fmt.Errorf("listing time entries in range: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteTimeEntryRepo) Update(ctx context.Context, id int64, u TimeEntryUpdate) error {
	var sets []string
	var args []any
	if u.Task != nil {
		sets = append(sets, "task = ?")
		args = append(args, *u.Task)
	}
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
	query := fmt.Sprintf("UPDATE time_entries SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking time entry update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking time entry delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) scanEntry(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var categoryID, joinedCatID sql.NullInt64
	var endStr, joinedCatName, joinedCatColor sql.NullString
	var startStr, createdStr string

	err := row.Scan(
		&e.ID, &e.Task, &categoryID, &e.Category,
		&startStr, &endStr, &e.DurationSec, &createdStr,
		&joinedCatID, &joinedCatName, &joinedCatColor,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	return r.populateEntry(&e, categoryID, joinedCatID, joinedCatName, joinedCatColor, startStr, endStr, createdStr)
}

func (r *SQLiteTimeEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var categoryID, joinedCatID sql.NullInt64
		var endStr, joinedCatName, joinedCatColor sql.NullString
		var startStr, createdStr string

		err := rows.Scan(
			&e.ID, &e.Task, &categoryID, &e.Category,
			&startStr, &endStr, &e.DurationSec, &createdStr,
			&joinedCatID, &joinedCatName, &joinedCatColor,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry row: %w", err)
		}
		entry, err := r.populateEntry(&e, categoryID, joinedCatID, joinedCatName, joinedCatColor, startStr, endStr, createdStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteTimeEntryRepo) populateEntry(e *domain.TimeEntry, categoryID, joinedCatID sql.NullInt64, joinedCatName, joinedCatColor sql.NullString, startStr string, endStr sql.NullString, createdStr string) (*domain.TimeEntry, error) {
	var parseErr error
	e.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	e.EndTime = parseNullableTime(endStr, time.RFC3339)
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if categoryID.Valid {
		e.CategoryID = &categoryID.Int64
	} else if joinedCatID.Valid {
		// Legacy name match: surface the resolved id.
		e.CategoryID = &joinedCatID.Int64
	}
	if joinedCatName.Valid {
		e.CategoryName = joinedCatName.String
	}
	if joinedCatColor.Valid {
		e.CategoryColor = joinedCatColor.String
	}
	return e, nil
}
