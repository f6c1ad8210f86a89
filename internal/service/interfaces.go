package service

import (
	"context"
	"time"

	"github.com/mgreco/tempus/internal/domain"
)

// ItemError records one failed item inside a bulk operation.
type ItemError struct {
	Key domain.ActivityKey
	Err error
}

// BulkResult is the outcome of a bulk operation. Per-item failures are
// data, not errors: a committed batch with Failed > 0 is a successful
// partial application.
type BulkResult struct {
	Updated int
	Deleted int
	Failed  int
	Errors  []ItemError
}

// ActivityService is the unified activity aggregation and reconciliation
// engine: it projects the three source tables into one editable activity
// log and routes mutations back to the right table.
type ActivityService interface {
	// Activities returns the unified set overlapping [start, end), sorted
	// ascending by start time, with the filter's predicates applied.
	Activities(ctx context.Context, start, end time.Time, filter *domain.ActivityFilter) ([]*domain.UnifiedActivity, error)

	// Activity looks up a single activity by composite identity.
	Activity(ctx context.Context, id int64, source domain.SourceType) (*domain.UnifiedActivity, error)

	// UpdateActivity validates editability and routes the partial update
	// to the originating source table. The whole update is rejected if any
	// touched field is outside the activity's editable set.
	UpdateActivity(ctx context.Context, id int64, source domain.SourceType, update domain.ActivityUpdate) error

	// DeleteActivity removes the underlying source row. Deletion is always
	// permitted; editability governs field mutation, not existence.
	DeleteActivity(ctx context.Context, id int64, source domain.SourceType) error

	// BulkUpdateActivities applies one update to many activities inside a
	// single transaction, tolerating per-item failures.
	BulkUpdateActivities(ctx context.Context, keys []domain.ActivityKey, update domain.ActivityUpdate) (*BulkResult, error)

	// BulkDeleteActivities deletes many activities inside a single
	// transaction, tolerating per-item failures.
	BulkDeleteActivities(ctx context.Context, keys []domain.ActivityKey) (*BulkResult, error)

	// Conflicts finds pairwise strict temporal overlaps between
	// same-source activities in the window.
	Conflicts(ctx context.Context, start, end time.Time) ([]domain.ActivityConflict, error)

	// ConflictKeys materializes the conflict set as activity keys, for
	// flagging individual activities.
	ConflictKeys(ctx context.Context, start, end time.Time) (map[domain.ActivityKey]bool, error)

	// MergeActivities consolidates same-source activities into one
	// surviving record and deletes the rest, atomically.
	MergeActivities(ctx context.Context, keys []domain.ActivityKey, strategy domain.MergeStrategy) (*domain.UnifiedActivity, error)

	// Stats aggregates derived summaries over the window.
	Stats(ctx context.Context, start, end time.Time) (*domain.ActivityStats, error)

	// SearchActivities queries a recent lookback window with a search
	// string: 30 days when the query is empty, 90 days otherwise.
	SearchActivities(ctx context.Context, query string, filter *domain.ActivityFilter) ([]*domain.UnifiedActivity, error)
}
