package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	noon, err := ParseInIST("2006-01-02 15:04:05", "2025-03-10 12:30:00")
	require.NoError(t, err)

	start := StartOfDay(noon)
	end := EndOfDay(noon)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())

	// The window covers the entire day, endpoints included.
	assert.False(t, noon.Before(start))
	assert.False(t, noon.After(end))
	assert.True(t, end.Before(start.Add(24*time.Hour)))
}

func TestParseInIST(t *testing.T) {
	d, err := ParseInIST(DateLayout, "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, IST, d.Location())
}
