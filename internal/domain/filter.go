package domain

import "strings"

// ActivityFilter narrows a unified activity query. All predicates are
// AND-combined; zero-value fields do not filter.
type ActivityFilter struct {
	SourceTypes    []SourceType
	ActivityTypes  []ActivityType
	CategoryIDs    []int64
	TagIDs         []int64
	SearchQuery    string
	MinDurationSec *int64
	MaxDurationSec *int64
	IsEditable     *bool
}

// IncludesSource reports whether the filter enables the given source.
// An empty SourceTypes list enables all three.
func (f *ActivityFilter) IncludesSource(s SourceType) bool {
	if f == nil || len(f.SourceTypes) == 0 {
		return true
	}
	for _, st := range f.SourceTypes {
		if st == s {
			return true
		}
	}
	return false
}

// Matches applies the post-normalization predicates. Source selection is
// handled earlier, at query dispatch.
func (f *ActivityFilter) Matches(a *UnifiedActivity) bool {
	if f == nil {
		return true
	}
	if len(f.ActivityTypes) > 0 && !containsType(f.ActivityTypes, a.Type) {
		return false
	}
	if len(f.CategoryIDs) > 0 {
		if a.CategoryID == nil || !containsID(f.CategoryIDs, *a.CategoryID) {
			return false
		}
	}
	if len(f.TagIDs) > 0 && !f.matchesTags(a) {
		return false
	}
	if f.SearchQuery != "" && !f.matchesSearch(a) {
		return false
	}
	if f.MinDurationSec != nil && a.DurationSec < *f.MinDurationSec {
		return false
	}
	if f.MaxDurationSec != nil && a.DurationSec > *f.MaxDurationSec {
		return false
	}
	if f.IsEditable != nil && a.IsEditable != *f.IsEditable {
		return false
	}
	return true
}

// matchesTags requires a non-empty intersection between the filter's tag
// ids and the activity's tags.
func (f *ActivityFilter) matchesTags(a *UnifiedActivity) bool {
	for _, t := range a.Tags {
		if containsID(f.TagIDs, t.ID) {
			return true
		}
	}
	return false
}

// matchesSearch is a case-insensitive substring match against the title,
// category name, app name, and domain.
func (f *ActivityFilter) matchesSearch(a *UnifiedActivity) bool {
	q := strings.ToLower(f.SearchQuery)
	for _, hay := range []string{a.Title, a.CategoryName, a.Metadata.AppName, a.Metadata.Domain} {
		if hay != "" && strings.Contains(strings.ToLower(hay), q) {
			return true
		}
	}
	return false
}

func containsType(list []ActivityType, t ActivityType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsID(list []int64, id int64) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
