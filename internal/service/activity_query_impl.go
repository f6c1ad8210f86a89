package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/repository"
)

// Activities queries each enabled source independently, normalizes,
// concatenates, sorts by start time, and applies the post-filters.
//
// A failing source degrades the result instead of failing it: the error
// is observed and the remaining sources still contribute. Only when every
// enabled source fails does the call return an error.
func (s *activityService) Activities(ctx context.Context, start, end time.Time, filter *domain.ActivityFilter) ([]*domain.UnifiedActivity, error) {
	startedAt := time.Now()
	activities, err := s.activitiesFromRepos(ctx, s.repos, start, end, filter)
	s.observe(ctx, "activities", startedAt, err, map[string]any{
		"window_start": start.Format(time.RFC3339),
		"window_end":   end.Format(time.RFC3339),
		"results":      len(activities),
	})
	return activities, err
}

func (s *activityService) activitiesFromRepos(ctx context.Context, rs repoSet, start, end time.Time, filter *domain.ActivityFilter) ([]*domain.UnifiedActivity, error) {
	var activities []*domain.UnifiedActivity
	var sourceErrs []error
	enabled := 0

	if filter.IncludesSource(domain.SourceManual) {
		enabled++
		entries, err := rs.entries.ListInRange(ctx, start, end)
		if err != nil {
			sourceErrs = append(sourceErrs, fmt.Errorf("manual source: %w", err))
		}
		for _, e := range entries {
			tags := s.tagsOrEmpty(ctx, rs, e.ID, domain.SourceManual.SourceTable())
			if a := NormalizeTimeEntry(e, tags); a != nil {
				activities = append(activities, a)
			}
		}
	}

	if filter.IncludesSource(domain.SourceAutomatic) {
		enabled++
		usages, err := rs.usage.ListInRange(ctx, start, end)
		if err != nil {
			sourceErrs = append(sourceErrs, fmt.Errorf("automatic source: %w", err))
		}
		for _, u := range usages {
			tags := s.tagsOrEmpty(ctx, rs, u.ID, domain.SourceAutomatic.SourceTable())
			if a := NormalizeAppUsage(u, tags); a != nil {
				activities = append(activities, a)
			}
		}
	}

	if filter.IncludesSource(domain.SourcePomodoro) {
		enabled++
		sessions, err := rs.pomodoros.ListInRange(ctx, start, end)
		if err != nil {
			sourceErrs = append(sourceErrs, fmt.Errorf("pomodoro source: %w", err))
		}
		for _, p := range sessions {
			tags := s.tagsOrEmpty(ctx, rs, p.ID, domain.SourcePomodoro.SourceTable())
			if a := NormalizePomodoro(p, tags); a != nil {
				activities = append(activities, a)
			}
		}
	}

	if enabled > 0 && len(sourceErrs) == enabled {
		return nil, fmt.Errorf("querying activities: %w", errors.Join(sourceErrs...))
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].StartTime.Before(activities[j].StartTime)
	})

	if filter == nil {
		return activities, nil
	}
	filtered := activities[:0]
	for _, a := range activities {
		if filter.Matches(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Activity looks up one activity directly in its source table.
func (s *activityService) Activity(ctx context.Context, id int64, source domain.SourceType) (*domain.UnifiedActivity, error) {
	return s.activityFromRepos(ctx, s.repos, domain.ActivityKey{ID: id, SourceType: source})
}

func (s *activityService) activityFromRepos(ctx context.Context, rs repoSet, key domain.ActivityKey) (*domain.UnifiedActivity, error) {
	tags := s.tagsOrEmpty(ctx, rs, key.ID, key.SourceType.SourceTable())

	var a *domain.UnifiedActivity
	switch key.SourceType {
	case domain.SourceManual:
		e, err := rs.entries.GetByID(ctx, key.ID)
		if err != nil {
			return nil, err
		}
		a = NormalizeTimeEntry(e, tags)
	case domain.SourceAutomatic:
		u, err := rs.usage.GetByID(ctx, key.ID)
		if err != nil {
			return nil, err
		}
		a = NormalizeAppUsage(u, tags)
	case domain.SourcePomodoro:
		p, err := rs.pomodoros.GetByID(ctx, key.ID)
		if err != nil {
			return nil, err
		}
		a = NormalizePomodoro(p, tags)
	default:
		return nil, fmt.Errorf("unknown source type %q: %w", key.SourceType, repository.ErrNotFound)
	}

	// An in-progress row exists but is not part of the unified view.
	if a == nil {
		return nil, fmt.Errorf("activity %s still in progress: %w", key, repository.ErrNotFound)
	}
	return a, nil
}

// tagsOrEmpty resolves a record's tags, degrading to an empty list on
// failure so tag problems never fail a read.
func (s *activityService) tagsOrEmpty(ctx context.Context, rs repoSet, recordID int64, sourceTable string) []domain.Tag {
	tags, err := rs.tags.TagsFor(ctx, recordID, sourceTable)
	if err != nil {
		s.observe(ctx, "resolve_tags", time.Now(), err, map[string]any{
			"record_id":    recordID,
			"source_table": sourceTable,
		})
		return []domain.Tag{}
	}
	return tags
}

// SearchActivities runs a query-window search over a recent lookback,
// widened when a search string narrows the result set.
func (s *activityService) SearchActivities(ctx context.Context, query string, filter *domain.ActivityFilter) ([]*domain.UnifiedActivity, error) {
	lookbackDays := s.searchLookbackDays
	if query != "" {
		lookbackDays = s.searchQueryLookbackDays
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)

	var f domain.ActivityFilter
	if filter != nil {
		f = *filter
	}
	f.SearchQuery = query
	return s.Activities(ctx, start, end, &f)
}
