package domain

import "time"

// ActivityUpdate is a partial update against a unified activity. Nil
// pointers leave the field untouched. Category is cleared by setting
// CategorySet with a nil CategoryID. A nil TagIDs slice leaves tags
// untouched; an empty non-nil slice removes all tags.
type ActivityUpdate struct {
	Title       *string
	StartTime   *time.Time
	EndTime     *time.Time
	DurationSec *int64
	CategorySet bool
	CategoryID  *int64
	TagIDs      []int64
}

// Fields lists the logical fields the update touches, for validation
// against the activity's editable set.
func (u *ActivityUpdate) Fields() []Field {
	var fields []Field
	if u.Title != nil {
		fields = append(fields, FieldTitle)
	}
	if u.StartTime != nil {
		fields = append(fields, FieldStartTime)
	}
	if u.EndTime != nil {
		fields = append(fields, FieldEndTime)
	}
	if u.DurationSec != nil {
		fields = append(fields, FieldDuration)
	}
	if u.CategorySet {
		fields = append(fields, FieldCategory)
	}
	if u.TagIDs != nil {
		fields = append(fields, FieldTags)
	}
	return fields
}

// IsEmpty reports whether the update touches nothing.
func (u *ActivityUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}
