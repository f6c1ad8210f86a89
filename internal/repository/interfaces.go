package repository

import (
	"context"
	"time"

	"github.com/mgreco/tempus/internal/domain"
)

// TimeEntryUpdate is the native partial-update shape for time_entries.
// Nil pointers leave columns untouched. CategorySet with a nil CategoryID
// clears the category.
type TimeEntryUpdate struct {
	Task        *string
	StartTime   *time.Time
	EndTime     *time.Time
	DurationSec *int64
	CategorySet bool
	CategoryID  *int64
}

// AppUsageUpdate is the native partial-update shape for app_usage.
// Time-range columns exist here for merge writes; field-level editability
// is enforced above the repository.
type AppUsageUpdate struct {
	StartTime   *time.Time
	EndTime     *time.Time
	DurationSec *int64
	CategorySet bool
	CategoryID  *int64
}

// PomodoroUpdate is the native partial-update shape for pomodoro_sessions.
type PomodoroUpdate struct {
	Label       *string
	StartTime   *time.Time
	EndTime     *time.Time
	DurationSec *int64
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id int64) (*domain.TimeEntry, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, id int64, u TimeEntryUpdate) error
	Delete(ctx context.Context, id int64) error
}

type AppUsageRepo interface {
	Create(ctx context.Context, u *domain.AppUsage) error
	GetByID(ctx context.Context, id int64) (*domain.AppUsage, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]*domain.AppUsage, error)
	Update(ctx context.Context, id int64, u AppUsageUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PomodoroRepo interface {
	Create(ctx context.Context, s *domain.PomodoroSession) error
	GetByID(ctx context.Context, id int64) (*domain.PomodoroSession, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]*domain.PomodoroSession, error)
	Update(ctx context.Context, id int64, u PomodoroUpdate) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepo interface {
	Create(ctx context.Context, name, color string) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// TagRepo manages tags and the polymorphic association table keyed by
// (record id, source table).
type TagRepo interface {
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	TagsFor(ctx context.Context, recordID int64, sourceTable string) ([]domain.Tag, error)
	SetTagsFor(ctx context.Context, recordID int64, sourceTable string, tagIDs []int64) error
	DeleteTagsFor(ctx context.Context, recordID int64, sourceTable string) error
}
