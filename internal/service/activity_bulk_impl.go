package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/domain"
)

// BulkUpdateActivities applies one update to every listed activity inside
// a single transaction. A failing item is counted and the loop continues;
// only a failure of the transaction itself aborts and rolls back the
// whole batch. Partial application is the expected outcome, not an error.
func (s *activityService) BulkUpdateActivities(ctx context.Context, keys []domain.ActivityKey, update domain.ActivityUpdate) (*BulkResult, error) {
	startedAt := time.Now()
	result := &BulkResult{}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rs := txRepos(tx)
		for _, key := range keys {
			if err := s.updateFromRepos(ctx, rs, key, update); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, ItemError{Key: key, Err: err})
				continue
			}
			result.Updated++
		}
		return nil
	})

	s.observe(ctx, "bulk_update_activities", startedAt, err, map[string]any{
		"total":   len(keys),
		"updated": result.Updated,
		"failed":  result.Failed,
	})
	if err != nil {
		return nil, fmt.Errorf("bulk update: %w", err)
	}
	return result, nil
}

// BulkDeleteActivities deletes every listed activity inside a single
// transaction, with the same per-item failure tolerance as bulk update.
func (s *activityService) BulkDeleteActivities(ctx context.Context, keys []domain.ActivityKey) (*BulkResult, error) {
	startedAt := time.Now()
	result := &BulkResult{}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rs := txRepos(tx)
		for _, key := range keys {
			if err := s.deleteFromRepos(ctx, rs, key); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, ItemError{Key: key, Err: err})
				continue
			}
			result.Deleted++
		}
		return nil
	})

	s.observe(ctx, "bulk_delete_activities", startedAt, err, map[string]any{
		"total":   len(keys),
		"deleted": result.Deleted,
		"failed":  result.Failed,
	})
	if err != nil {
		return nil, fmt.Errorf("bulk delete: %w", err)
	}
	return result, nil
}
