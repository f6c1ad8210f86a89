package domain

import "time"

// TimeEntry is a manually logged block of work against a named task.
// EndTime is nil while the entry's timer is still running; only completed
// entries participate in the unified view.
type TimeEntry struct {
	ID          int64
	Task        string
	CategoryID  *int64
	Category    string // legacy name column, pre category-table data
	StartTime   time.Time
	EndTime     *time.Time
	DurationSec int64
	CreatedAt   time.Time

	// Joined category fields, populated by range queries.
	CategoryName  string
	CategoryColor string
}

// AppUsage is one passively captured slice of application or browser time.
type AppUsage struct {
	ID          int64
	AppName     string
	WindowTitle string
	Domain      string
	URL         string
	IsBrowser   bool
	IsIdle      bool
	CategoryID  *int64
	Category    string // legacy name column
	StartTime   time.Time
	EndTime     *time.Time
	DurationSec int64
	CreatedAt   time.Time

	CategoryName  string
	CategoryColor string
}

// PomodoroSession is one structured focus or break interval.
type PomodoroSession struct {
	ID          int64
	Label       string
	SessionType SessionType
	Completed   bool
	Interrupted bool
	StartTime   time.Time
	EndTime     *time.Time
	DurationSec int64
	CreatedAt   time.Time
}

type Category struct {
	ID        int64
	Name      string
	Color     string
	CreatedAt time.Time
}

type Tag struct {
	ID        int64
	Name      string
	Color     string
	CreatedAt time.Time
}
