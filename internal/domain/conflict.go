package domain

import "fmt"

// ResolutionMerge is the only resolution currently suggested for a
// temporal conflict.
const ResolutionMerge = "merge"

// ActivityConflict is a strict temporal overlap between two activities of
// the same source type. Cross-source overlap is legitimate coexistence,
// not a conflict.
type ActivityConflict struct {
	A                   *UnifiedActivity
	B                   *UnifiedActivity
	SuggestedResolution string
	Message             string
}

// NewActivityConflict builds the conflict record for a detected overlap.
func NewActivityConflict(a, b *UnifiedActivity) ActivityConflict {
	return ActivityConflict{
		A:                   a,
		B:                   b,
		SuggestedResolution: ResolutionMerge,
		Message:             fmt.Sprintf("%q overlaps with %q", a.Title, b.Title),
	}
}
