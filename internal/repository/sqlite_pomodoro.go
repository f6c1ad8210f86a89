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

const pomodoroColumns = `id, label, session_type, completed, interrupted,
		start_time, end_time, duration_sec, created_at`

// SQLitePomodoroRepo implements PomodoroRepo using a SQLite database.
type SQLitePomodoroRepo struct {
	db db.DBTX
}

// NewSQLitePomodoroRepo creates a new SQLitePomodoroRepo.
func NewSQLitePomodoroRepo(db db.DBTX) *SQLitePomodoroRepo {
	return &SQLitePomodoroRepo{db: db}
}

func (r *SQLitePomodoroRepo) Create(ctx context.Context, s *domain.PomodoroSession) error {
	query := `INSERT INTO pomodoro_sessions (label, session_type, completed, interrupted,
		start_time, end_time, duration_sec, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, query,
		s.Label,
		string(s.SessionType),
		boolToInt(s.Completed),
		boolToInt(s.Interrupted),
		utcString(s.StartTime),
		nullableTimeToValue(s.EndTime),
		s.DurationSec,
		utcString(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting pomodoro session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading pomodoro session id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *SQLitePomodoroRepo) GetByID(ctx context.Context, id int64) (*domain.PomodoroSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM pomodoro_sessions WHERE id = ?`, pomodoroColumns)
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

// ListInRange returns completed sessions overlapping the [start, end) window.
func (r *SQLitePomodoroRepo) ListInRange(ctx context.Context, start, end time.Time) ([]*domain.PomodoroSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM pomodoro_sessions
		WHERE end_time IS NOT NULL AND start_time < ? AND end_time > ?
		ORDER BY start_time`, pomodoroColumns)
	rows, err := r.db.QueryContext(ctx, query,
		utcString(end), utcString(start))
	if err != nil {
		return nil, fmt.Errorf("listing pomodoro sessions in range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLitePomodoroRepo) Update(ctx context.Context, id int64, u PomodoroUpdate) error {
	var sets []string
	var args []any
	if u.Label != nil {
		sets = append(sets, "label = ?")
		args = append(args, *u.Label)
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
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE pomodoro_sessions SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating pomodoro session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking pomodoro session update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("pomodoro session %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePomodoroRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pomodoro_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pomodoro session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking pomodoro session delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("pomodoro session %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePomodoroRepo) scanSession(row *sql.Row) (*domain.PomodoroSession, error) {
	var s domain.PomodoroSession
	var sessionType string
	var completed, interrupted int
	var endStr sql.NullString
	var startStr, createdStr string

	err := row.Scan(
		&s.ID, &s.Label, &sessionType, &completed, &interrupted,
		&startStr, &endStr, &s.DurationSec, &createdStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pomodoro session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning pomodoro session: %w", err)
	}
	return r.populateSession(&s, sessionType, completed, interrupted, startStr, endStr, createdStr)
}

func (r *SQLitePomodoroRepo) scanSessions(rows *sql.Rows) ([]*domain.PomodoroSession, error) {
	var sessions []*domain.PomodoroSession
	for rows.Next() {
		var s domain.PomodoroSession
		var sessionType string
		var completed, interrupted int
		var endStr sql.NullString
		var startStr, createdStr string

		err := rows.Scan(
			&s.ID, &s.Label, &sessionType, &completed, &interrupted,
			&startStr, &endStr, &s.DurationSec, &createdStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pomodoro session row: %w", err)
		}
		session, err := r.populateSession(&s, sessionType, completed, interrupted, startStr, endStr, createdStr)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pomodoro sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLitePomodoroRepo) populateSession(s *domain.PomodoroSession, sessionType string, completed, interrupted int, startStr string, endStr sql.NullString, createdStr string) (*domain.PomodoroSession, error) {
	var parseErr error
	s.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	s.EndTime = parseNullableTime(endStr, time.RFC3339)
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.SessionType = domain.SessionType(sessionType)
	s.Completed = intToBool(completed)
	s.Interrupted = intToBool(interrupted)
	return s, nil
}
