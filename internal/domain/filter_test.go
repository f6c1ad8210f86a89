package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func filterFixture() *UnifiedActivity {
	catID := int64(2)
	return &UnifiedActivity{
		ID:           1,
		SourceType:   SourceAutomatic,
		Type:         TypeBrowser,
		Title:        "github.com",
		StartTime:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		DurationSec:  1800,
		CategoryID:   &catID,
		CategoryName: "Development",
		Tags:         []Tag{{ID: 5, Name: "review"}},
		Metadata: ActivityMetadata{
			AppName: "Firefox",
			Domain:  "github.com",
		},
		IsEditable: true,
	}
}

func TestIncludesSource(t *testing.T) {
	var nilFilter *ActivityFilter
	assert.True(t, nilFilter.IncludesSource(SourceManual), "nil filter enables everything")

	empty := &ActivityFilter{}
	assert.True(t, empty.IncludesSource(SourcePomodoro), "empty list enables everything")

	manualOnly := &ActivityFilter{SourceTypes: []SourceType{SourceManual}}
	assert.True(t, manualOnly.IncludesSource(SourceManual))
	assert.False(t, manualOnly.IncludesSource(SourceAutomatic))
}

func TestFilterMatches(t *testing.T) {
	a := filterFixture()
	minShort := int64(60)
	minLong := int64(3600)
	editable := true
	notEditable := false

	tests := []struct {
		name   string
		filter *ActivityFilter
		want   bool
	}{
		{"nil filter matches", nil, true},
		{"empty filter matches", &ActivityFilter{}, true},
		{"activity type match", &ActivityFilter{ActivityTypes: []ActivityType{TypeBrowser}}, true},
		{"activity type mismatch", &ActivityFilter{ActivityTypes: []ActivityType{TypeTimeEntry}}, false},
		{"category match", &ActivityFilter{CategoryIDs: []int64{2}}, true},
		{"category mismatch", &ActivityFilter{CategoryIDs: []int64{9}}, false},
		{"tag intersection", &ActivityFilter{TagIDs: []int64{5, 99}}, true},
		{"tag disjoint", &ActivityFilter{TagIDs: []int64{99}}, false},
		{"search hits title", &ActivityFilter{SearchQuery: "GITHUB"}, true},
		{"search hits category name", &ActivityFilter{SearchQuery: "develop"}, true},
		{"search hits app name", &ActivityFilter{SearchQuery: "firefox"}, true},
		{"search miss", &ActivityFilter{SearchQuery: "spreadsheet"}, false},
		{"min duration satisfied", &ActivityFilter{MinDurationSec: &minShort}, true},
		{"min duration too high", &ActivityFilter{MinDurationSec: &minLong}, false},
		{"max duration too low", &ActivityFilter{MaxDurationSec: &minShort}, false},
		{"editable match", &ActivityFilter{IsEditable: &editable}, true},
		{"editable mismatch", &ActivityFilter{IsEditable: &notEditable}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(a))
		})
	}
}

func TestFilterMatchesUncategorized(t *testing.T) {
	a := filterFixture()
	a.CategoryID = nil
	f := &ActivityFilter{CategoryIDs: []int64{2}}
	assert.False(t, f.Matches(a), "uncategorized activities never match a category filter")
}
