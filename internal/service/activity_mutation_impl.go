package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/repository"
)

// UpdateActivity checks, in order: the activity exists, its source type is
// editable at all, and every touched field is in its editable set. Any
// failure rejects the whole update before a single write happens.
func (s *activityService) UpdateActivity(ctx context.Context, id int64, source domain.SourceType, update domain.ActivityUpdate) error {
	startedAt := time.Now()
	key := domain.ActivityKey{ID: id, SourceType: source}
	err := s.updateFromRepos(ctx, s.repos, key, update)
	s.observe(ctx, "update_activity", startedAt, err, map[string]any{
		"activity": key.String(),
		"fields":   fieldNames(update.Fields()),
	})
	return err
}

func (s *activityService) updateFromRepos(ctx context.Context, rs repoSet, key domain.ActivityKey, update domain.ActivityUpdate) error {
	a, err := s.activityFromRepos(ctx, rs, key)
	if err != nil {
		return err
	}
	if !a.IsEditable {
		return fmt.Errorf("activity %s: %w", key, domain.ErrNotEditable)
	}
	var invalid []string
	for _, f := range update.Fields() {
		if !a.CanEdit(f) {
			invalid = append(invalid, string(f))
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("activity %s fields %v: %w", key, invalid, domain.ErrFieldNotEditable)
	}
	return s.applyUpdate(ctx, rs, a, update)
}

// applyUpdate translates the unified partial update into the source
// table's native shape and writes it. Callers have already validated
// field-level editability; the merge engine writes below that check.
func (s *activityService) applyUpdate(ctx context.Context, rs repoSet, a *domain.UnifiedActivity, update domain.ActivityUpdate) error {
	switch a.SourceType {
	case domain.SourceManual:
		native := repository.TimeEntryUpdate{
			Task:        update.Title,
			StartTime:   update.StartTime,
			EndTime:     update.EndTime,
			DurationSec: update.DurationSec,
			CategorySet: update.CategorySet,
			CategoryID:  update.CategoryID,
		}
		if err := rs.entries.Update(ctx, a.ID, native); err != nil {
			return err
		}
	case domain.SourceAutomatic:
		native := repository.AppUsageUpdate{
			StartTime:   update.StartTime,
			EndTime:     update.EndTime,
			DurationSec: update.DurationSec,
			CategorySet: update.CategorySet,
			CategoryID:  update.CategoryID,
		}
		if err := rs.usage.Update(ctx, a.ID, native); err != nil {
			return err
		}
	case domain.SourcePomodoro:
		native := repository.PomodoroUpdate{
			Label:       update.Title,
			StartTime:   update.StartTime,
			EndTime:     update.EndTime,
			DurationSec: update.DurationSec,
		}
		if err := rs.pomodoros.Update(ctx, a.ID, native); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown source type %q: %w", a.SourceType, repository.ErrNotFound)
	}

	// Tag updates replace the full association, never append.
	if update.TagIDs != nil {
		if err := rs.tags.SetTagsFor(ctx, a.ID, a.SourceType.SourceTable(), update.TagIDs); err != nil {
			return err
		}
	}
	return nil
}

// DeleteActivity dispatches to the source table's delete. No editability
// check: editability governs field mutation, not existence.
func (s *activityService) DeleteActivity(ctx context.Context, id int64, source domain.SourceType) error {
	startedAt := time.Now()
	key := domain.ActivityKey{ID: id, SourceType: source}
	err := s.deleteFromRepos(ctx, s.repos, key)
	s.observe(ctx, "delete_activity", startedAt, err, map[string]any{
		"activity": key.String(),
	})
	return err
}

func (s *activityService) deleteFromRepos(ctx context.Context, rs repoSet, key domain.ActivityKey) error {
	// Associations go first so a successful delete leaves no orphans.
	if err := rs.tags.DeleteTagsFor(ctx, key.ID, key.SourceType.SourceTable()); err != nil {
		return err
	}
	switch key.SourceType {
	case domain.SourceManual:
		return rs.entries.Delete(ctx, key.ID)
	case domain.SourceAutomatic:
		return rs.usage.Delete(ctx, key.ID)
	case domain.SourcePomodoro:
		return rs.pomodoros.Delete(ctx, key.ID)
	default:
		return fmt.Errorf("unknown source type %q: %w", key.SourceType, repository.ErrNotFound)
	}
}

func fieldNames(fields []domain.Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, string(f))
	}
	return names
}
