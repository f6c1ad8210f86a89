package domain

import (
	"fmt"
	"time"
)

// UnifiedActivity is a source-agnostic projection of one time-bounded
// record of activity. It has no storage of its own: every read recomputes
// it from the originating row plus joined category and tag data, and every
// write goes back through the originating source table.
//
// Identity is the composite (ID, SourceType). IDs are only unique within
// their source table.
type UnifiedActivity struct {
	ID          int64
	SourceType  SourceType
	Type        ActivityType
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	DurationSec int64

	CategoryID    *int64
	CategoryName  string
	CategoryColor string
	Tags          []Tag

	Metadata ActivityMetadata

	IsEditable     bool
	EditableFields []Field

	CreatedAt time.Time
}

// ActivityMetadata carries the source-specific payload that does not fit
// the unified shape.
type ActivityMetadata struct {
	SourceID    int64
	SourceTable string

	// Automatic capture extras.
	AppName     string
	WindowTitle string
	Domain      string
	URL         string
	IsBrowser   bool
	IsIdle      bool

	// Pomodoro extras.
	SessionType SessionType
	Completed   bool
	Interrupted bool
}

// ActivityKey identifies an activity across source tables.
type ActivityKey struct {
	ID         int64
	SourceType SourceType
}

func (k ActivityKey) String() string {
	return fmt.Sprintf("%s/%d", k.SourceType, k.ID)
}

func (a *UnifiedActivity) Key() ActivityKey {
	return ActivityKey{ID: a.ID, SourceType: a.SourceType}
}

// CanEdit reports whether the source type permits mutating the given field.
func (a *UnifiedActivity) CanEdit(f Field) bool {
	if !a.IsEditable {
		return false
	}
	for _, ef := range a.EditableFields {
		if ef == f {
			return true
		}
	}
	return false
}

// Overlaps reports whether two activities strictly overlap in time.
// Touching endpoints do not overlap.
func (a *UnifiedActivity) Overlaps(b *UnifiedActivity) bool {
	return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
}

// DerivedDurationSec is the duration implied by the activity's time range,
// floored to whole seconds.
func (a *UnifiedActivity) DerivedDurationSec() int64 {
	return int64(a.EndTime.Sub(a.StartTime) / time.Second)
}

// TagIDs returns the ids of the activity's tags in display order.
func (a *UnifiedActivity) TagIDs() []int64 {
	ids := make([]int64, 0, len(a.Tags))
	for _, t := range a.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
