package model

import (
	"fmt"
	"time"

	"github.com/templui/goaltracker/internal/timeutil"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Unit is the display name of one bucket.
func (f Frequency) Unit() string {
	switch f {
	case FrequencyDaily:
		return "Day"
	case FrequencyWeekly:
		return "Week"
	case FrequencyMonthly:
		return "Month"
	}
	return ""
}

// Bucket maps a calendar day to the key of the bucket containing it.
func (f Frequency) Bucket(day time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return timeutil.StartOfWeek(day)
	case FrequencyMonthly:
		return timeutil.StartOfMonth(day)
	default:
		return timeutil.Date(day)
	}
}

// Previous returns the bucket one unit before bucket.
func (f Frequency) Previous(bucket time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return bucket.AddDate(0, 0, -7)
	case FrequencyMonthly:
		return bucket.AddDate(0, -1, 0)
	default:
		return bucket.AddDate(0, 0, -1)
	}
}

// TimeBasedGoal is tracked by how consistently entries land in consecutive
// calendar buckets.
type TimeBasedGoal struct {
	Goal
	Frequency Frequency

	currentStreak int
}

func NewTimeBasedGoal(title, description string, start, end time.Time, frequency Frequency) *TimeBasedGoal {
	return &TimeBasedGoal{
		Goal: Goal{
			Type:        GoalTypeTimeBased,
			Title:       title,
			Description: description,
			Status:      GoalStatusInProgress,
			StartDate:   start,
			EndDate:     end,
		},
		Frequency: frequency,
	}
}

// CurrentStreak is the streak computed by the last DeriveProgress call.
func (g *TimeBasedGoal) CurrentStreak() int {
	return g.currentStreak
}

func (g *TimeBasedGoal) DeriveProgress(now time.Time) Progress {
	g.currentStreak = Streak(g.Entries, g.Frequency, now)

	var changed bool
	if !g.EndDate.IsZero() {
		today := timeutil.Date(now)
		if today.After(timeutil.DateIn(g.EndDate, now.Location())) {
			changed = g.complete()
		}
	}

	return Progress{
		Text:          fmt.Sprintf("%d %s Streak!", g.currentStreak, g.Frequency.Unit()),
		StatusChanged: changed,
	}
}
