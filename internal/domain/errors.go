package domain

import "errors"

var (
	// ErrNotEditable means the activity exists but its source type permits
	// no field mutation at all.
	ErrNotEditable = errors.New("activity is not editable")

	// ErrFieldNotEditable means the update touches at least one field
	// outside the activity's editable set. The whole update is rejected.
	ErrFieldNotEditable = errors.New("field is not editable for this source type")

	// ErrCrossSourceMerge means a merge was requested across differing
	// source types.
	ErrCrossSourceMerge = errors.New("cannot merge activities from different source types")

	// ErrNoActivities means an operation resolved zero activities.
	ErrNoActivities = errors.New("no activities found")
)
