package service

import (
	"context"
	"time"

	"github.com/mgreco/tempus/internal/domain"
)

// Conflicts finds pairwise strict overlaps between same-source activities
// in the window. O(n²) over the queried set, which daily and weekly
// windows keep small.
func (s *activityService) Conflicts(ctx context.Context, start, end time.Time) ([]domain.ActivityConflict, error) {
	activities, err := s.Activities(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	return conflictPairs(activities), nil
}

// ConflictKeys materializes the same overlap scan as a key set, for
// flagging individual activities in a listing.
func (s *activityService) ConflictKeys(ctx context.Context, start, end time.Time) (map[domain.ActivityKey]bool, error) {
	activities, err := s.Activities(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	keys := make(map[domain.ActivityKey]bool)
	for _, c := range conflictPairs(activities) {
		keys[c.A.Key()] = true
		keys[c.B.Key()] = true
	}
	return keys, nil
}

// conflictPairs is the shared overlap scan. Only pairs within one source
// type can conflict; a manual entry and an automatic capture legitimately
// coexist at the same wall-clock time.
func conflictPairs(activities []*domain.UnifiedActivity) []domain.ActivityConflict {
	var conflicts []domain.ActivityConflict
	for i := 0; i < len(activities); i++ {
		for j := i + 1; j < len(activities); j++ {
			a, b := activities[i], activities[j]
			if a.SourceType != b.SourceType {
				continue
			}
			if a.Overlaps(b) {
				conflicts = append(conflicts, domain.NewActivityConflict(a, b))
			}
		}
	}
	return conflicts
}
