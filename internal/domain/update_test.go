package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdateFields(t *testing.T) {
	title := "Refine proposal"
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	dur := int64(600)

	t.Run("empty update", func(t *testing.T) {
		u := &ActivityUpdate{}
		assert.Empty(t, u.Fields())
		assert.True(t, u.IsEmpty())
	})

	t.Run("every pointer maps to its field", func(t *testing.T) {
		end := start.Add(time.Hour)
		u := &ActivityUpdate{
			Title:       &title,
			StartTime:   &start,
			EndTime:     &end,
			DurationSec: &dur,
			CategorySet: true,
			TagIDs:      []int64{1},
		}
		assert.Equal(t,
			[]Field{FieldTitle, FieldStartTime, FieldEndTime, FieldDuration, FieldCategory, FieldTags},
			u.Fields())
		assert.False(t, u.IsEmpty())
	})

	t.Run("clearing the category still touches the category field", func(t *testing.T) {
		u := &ActivityUpdate{CategorySet: true, CategoryID: nil}
		assert.Equal(t, []Field{FieldCategory}, u.Fields())
	})

	t.Run("empty non-nil tag list touches tags", func(t *testing.T) {
		u := &ActivityUpdate{TagIDs: []int64{}}
		assert.Equal(t, []Field{FieldTags}, u.Fields())
	})

	t.Run("nil tag list leaves tags untouched", func(t *testing.T) {
		u := &ActivityUpdate{Title: &title}
		assert.Equal(t, []Field{FieldTitle}, u.Fields())
	})
}
