package cli

import (
	"testing"
	"time"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeFlag(t *testing.T) {
	d, err := parseTimeFlag("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	ts, err := parseTimeFlag("2025-03-10T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), ts)

	_, err = parseTimeFlag("yesterday")
	assert.Error(t, err)
}

func TestRangeFromFlags(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		start, end, err := rangeFromFlags("2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z", "")
		require.NoError(t, err)
		assert.Equal(t, time.Hour, end.Sub(start))
	})

	t.Run("duration from a start", func(t *testing.T) {
		start, end, err := rangeFromFlags("2025-03-10T09:00:00Z", "", "45m")
		require.NoError(t, err)
		assert.Equal(t, 45*time.Minute, end.Sub(start))
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), start)
	})

	t.Run("duration counted back from an end", func(t *testing.T) {
		start, end, err := rangeFromFlags("", "2025-03-10T10:00:00Z", "30m")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), end)
	})

	t.Run("missing everything", func(t *testing.T) {
		_, _, err := rangeFromFlags("", "", "")
		assert.Error(t, err)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, _, err := rangeFromFlags("2025-03-10T10:00:00Z", "2025-03-10T09:00:00Z", "")
		assert.Error(t, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		_, _, err := rangeFromFlags("", "", "-10m")
		assert.Error(t, err)
	})
}

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys([]string{"1", "42"}, domain.SourcePomodoro)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActivityKey{
		{ID: 1, SourceType: domain.SourcePomodoro},
		{ID: 42, SourceType: domain.SourcePomodoro},
	}, keys)

	_, err = parseKeys([]string{"abc"}, domain.SourceManual)
	assert.Error(t, err)
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = parseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseIDList("1,x")
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", formatDuration(45))
	assert.Equal(t, "2m05s", formatDuration(125))
	assert.Equal(t, "1h30m", formatDuration(5400))
	assert.Equal(t, "25m00s", formatDuration(1500))
}
