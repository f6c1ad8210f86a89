package domain

// CategoryStat is one row of the per-category breakdown.
type CategoryStat struct {
	Name        string
	Color       string
	DurationSec int64
	Percentage  float64
	Count       int
}

// ActivityStats summarizes a unified activity set over one query window.
type ActivityStats struct {
	TotalActivities   int
	TotalDurationSec  int64
	CountBySource     map[SourceType]int
	CategoryBreakdown []CategoryStat
	EditableCount     int
	ConflictCount     int
}
