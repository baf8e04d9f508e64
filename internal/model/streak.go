package model

import (
	"slices"
	"time"

	"github.com/templui/goaltracker/internal/timeutil"
)

// Streak counts consecutive buckets of activity ending at the current bucket.
//
// Calendar days are taken in now's location. The most recent bucket may be
// the current one or the one before it; anything older yields 0. Entries in
// buckets after the current one are ignored.
func Streak(entries []*ProgressEntry, frequency Frequency, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	current := frequency.Bucket(timeutil.Date(now))

	seen := make(map[time.Time]struct{}, len(entries))
	buckets := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		b := frequency.Bucket(timeutil.DateIn(e.LoggedAt, now.Location()))
		if b.After(current) {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		buckets = append(buckets, b)
	}
	if len(buckets) == 0 {
		return 0
	}

	slices.SortFunc(buckets, func(a, b time.Time) int {
		return b.Compare(a)
	})

	last := buckets[0]
	if !last.Equal(current) && !last.Equal(frequency.Previous(current)) {
		return 0
	}

	streak := 1
	for _, b := range buckets[1:] {
		if !b.Equal(frequency.Previous(last)) {
			break
		}
		streak++
		last = b
	}
	return streak
}
