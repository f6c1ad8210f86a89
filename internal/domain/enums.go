package domain

type SourceType string

const (
	SourceManual    SourceType = "manual"
	SourceAutomatic SourceType = "automatic"
	SourcePomodoro  SourceType = "pomodoro"
)

// AllSourceTypes is the canonical query order for the three origin systems.
var AllSourceTypes = []SourceType{SourceManual, SourceAutomatic, SourcePomodoro}

// ValidSourceTypes is the canonical set of accepted source type strings.
var ValidSourceTypes = map[string]bool{
	"manual": true, "automatic": true, "pomodoro": true,
}

type ActivityType string

const (
	TypeTimeEntry     ActivityType = "time_entry"
	TypeApp           ActivityType = "app"
	TypeBrowser       ActivityType = "browser"
	TypePomodoroFocus ActivityType = "pomodoro_focus"
	TypePomodoroBreak ActivityType = "pomodoro_break"
)

type SessionType string

const (
	SessionFocus SessionType = "focus"
	SessionBreak SessionType = "break"
)

type MergeStrategy string

const (
	MergeLongest  MergeStrategy = "longest"
	MergeEarliest MergeStrategy = "earliest"
	MergeLatest   MergeStrategy = "latest"
)

// ValidMergeStrategies is the canonical set of accepted merge strategy strings.
var ValidMergeStrategies = map[string]bool{
	"longest": true, "earliest": true, "latest": true,
}

// Field names a logical attribute of a unified activity that a
// source type may permit mutating.
type Field string

const (
	FieldTitle     Field = "title"
	FieldStartTime Field = "startTime"
	FieldEndTime   Field = "endTime"
	FieldDuration  Field = "duration"
	FieldCategory  Field = "categoryId"
	FieldTags      Field = "tags"
)

// SourceTable maps a source type to the table its records live in.
func (s SourceType) SourceTable() string {
	switch s {
	case SourceManual:
		return "time_entries"
	case SourceAutomatic:
		return "app_usage"
	case SourcePomodoro:
		return "pomodoro_sessions"
	}
	return ""
}

// EditablePolicy returns the exact set of fields a source type permits
// mutating. Break sessions keep only their tags editable; everything
// else about them is a historical fact.
func EditablePolicy(source SourceType, activityType ActivityType) []Field {
	switch source {
	case SourceManual:
		return []Field{FieldTitle, FieldStartTime, FieldEndTime, FieldDuration, FieldCategory, FieldTags}
	case SourceAutomatic:
		return []Field{FieldCategory, FieldTags}
	case SourcePomodoro:
		if activityType == TypePomodoroFocus {
			return []Field{FieldTitle, FieldTags}
		}
		return []Field{FieldTags}
	}
	return nil
}
