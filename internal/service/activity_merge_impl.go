package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/repository"
)

// MergeActivities consolidates the resolved activities into one surviving
// record and deletes the rest, in a single transaction. The strategy only
// selects which record's identity and non-time fields survive; the merged
// time range is always the true min(start)/max(end) across all inputs,
// and the duration is always recomputed from that range.
func (s *activityService) MergeActivities(ctx context.Context, keys []domain.ActivityKey, strategy domain.MergeStrategy) (*domain.UnifiedActivity, error) {
	startedAt := time.Now()
	merged, err := s.mergeActivities(ctx, keys, strategy)
	fields := map[string]any{
		"inputs":   len(keys),
		"strategy": string(strategy),
	}
	if merged != nil {
		fields["survivor"] = merged.Key().String()
	}
	s.observe(ctx, "merge_activities", startedAt, err, fields)
	return merged, err
}

func (s *activityService) mergeActivities(ctx context.Context, keys []domain.ActivityKey, strategy domain.MergeStrategy) (*domain.UnifiedActivity, error) {
	if strategy == "" {
		strategy = domain.MergeLongest
	}
	if !domain.ValidMergeStrategies[string(strategy)] {
		return nil, fmt.Errorf("unknown merge strategy %q", strategy)
	}

	// Resolve inputs; ids that no longer exist are skipped rather than
	// failing the merge of the rest. Repeated keys count once, otherwise
	// the duplicate's delete would abort the transaction.
	var activities []*domain.UnifiedActivity
	resolved := make(map[domain.ActivityKey]bool, len(keys))
	for _, key := range keys {
		if resolved[key] {
			continue
		}
		resolved[key] = true
		a, err := s.Activity(ctx, key.ID, key.SourceType)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		activities = append(activities, a)
	}
	if len(activities) == 0 {
		return nil, domain.ErrNoActivities
	}
	if len(activities) == 1 {
		return activities[0], nil
	}
	source := activities[0].SourceType
	for _, a := range activities[1:] {
		if a.SourceType != source {
			return nil, domain.ErrCrossSourceMerge
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].StartTime.Before(activities[j].StartTime)
	})

	base := selectMergeBase(activities, strategy)
	mergedStart := activities[0].StartTime
	mergedEnd := activities[0].EndTime
	for _, a := range activities[1:] {
		if a.EndTime.After(mergedEnd) {
			mergedEnd = a.EndTime
		}
	}
	mergedDuration := int64(mergedEnd.Sub(mergedStart) / time.Second)

	// Union of all inputs' tags, deduplicated by id; the first occurrence
	// in start-time order wins.
	seen := make(map[int64]bool)
	var tagIDs []int64
	for _, a := range activities {
		for _, t := range a.Tags {
			if !seen[t.ID] {
				seen[t.ID] = true
				tagIDs = append(tagIDs, t.ID)
			}
		}
	}
	if tagIDs == nil {
		tagIDs = []int64{}
	}

	update := domain.ActivityUpdate{
		StartTime:   &mergedStart,
		EndTime:     &mergedEnd,
		DurationSec: &mergedDuration,
		TagIDs:      tagIDs,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rs := txRepos(tx)
		// The merged range is written below the editability check: merge
		// must move time fields even on sources that forbid editing them.
		if err := s.applyUpdate(ctx, rs, base, update); err != nil {
			return fmt.Errorf("updating merge base %s: %w", base.Key(), err)
		}
		for _, a := range activities {
			if a.Key() == base.Key() {
				continue
			}
			if err := s.deleteFromRepos(ctx, rs, a.Key()); err != nil {
				return fmt.Errorf("deleting merged activity %s: %w", a.Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Activity(ctx, base.ID, base.SourceType)
}

// selectMergeBase picks the surviving record from the start-time-sorted
// inputs. Ties break to the earliest start position. "latest" takes the
// last element of the sorted list, which matches "latest by start order"
// rather than strictly largest end time when data is out of order.
func selectMergeBase(sorted []*domain.UnifiedActivity, strategy domain.MergeStrategy) *domain.UnifiedActivity {
	switch strategy {
	case domain.MergeEarliest:
		return sorted[0]
	case domain.MergeLatest:
		return sorted[len(sorted)-1]
	default: // longest
		base := sorted[0]
		for _, a := range sorted[1:] {
			if a.DurationSec > base.DurationSec {
				base = a
			}
		}
		return base
	}
}
