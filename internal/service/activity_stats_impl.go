package service

import (
	"context"
	"sort"
	"time"

	"github.com/mgreco/tempus/internal/domain"
)

// uncategorizedBucket groups activities with no resolvable category in
// the per-category breakdown.
const uncategorizedBucket = "Uncategorized"

// Stats computes derived summaries over the window's unified set.
func (s *activityService) Stats(ctx context.Context, start, end time.Time) (*domain.ActivityStats, error) {
	activities, err := s.Activities(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}

	stats := &domain.ActivityStats{
		TotalActivities: len(activities),
		CountBySource:   make(map[domain.SourceType]int),
		ConflictCount:   len(conflictPairs(activities)),
	}

	type bucket struct {
		color    string
		duration int64
		count    int
	}
	buckets := make(map[string]*bucket)

	for _, a := range activities {
		stats.TotalDurationSec += a.DurationSec
		stats.CountBySource[a.SourceType]++
		if a.IsEditable {
			stats.EditableCount++
		}

		name := a.CategoryName
		if name == "" {
			name = uncategorizedBucket
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{color: a.CategoryColor}
			buckets[name] = b
		}
		b.duration += a.DurationSec
		b.count++
	}

	for name, b := range buckets {
		stat := domain.CategoryStat{
			Name:        name,
			Color:       b.color,
			DurationSec: b.duration,
			Count:       b.count,
		}
		// Zero total means zero percentage, never a division by zero.
		if stats.TotalDurationSec > 0 {
			stat.Percentage = float64(b.duration) / float64(stats.TotalDurationSec) * 100
		}
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, stat)
	}
	sort.Slice(stats.CategoryBreakdown, func(i, j int) bool {
		bi, bj := stats.CategoryBreakdown[i], stats.CategoryBreakdown[j]
		if bi.DurationSec != bj.DurationSec {
			return bi.DurationSec > bj.DurationSec
		}
		return bi.Name < bj.Name
	})

	return stats, nil
}
