package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	late := time.Date(2026, 3, 14, 23, 59, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), Date(late))

	early := time.Date(2026, 3, 14, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), DateIn(early, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), DateIn(early, nil))
}

func TestStartOfWeek(t *testing.T) {
	// 2026-10-14 is a Wednesday
	wed := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), StartOfWeek(wed))

	sun := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sun, StartOfWeek(sun))

	sat := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sun, StartOfWeek(sat))
}

func TestStartOfMonth(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		StartOfMonth(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)),
	)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-12-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31/12/2026", time.UTC)
	assert.Error(t, err)
}
