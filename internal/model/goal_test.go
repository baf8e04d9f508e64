package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return now.AddDate(0, 0, offset)
}

func entryAt(at time.Time, value string) *ProgressEntry {
	return &ProgressEntry{LoggedAt: at, Value: decimal.RequireFromString(value)}
}

func quantitative(target string, values ...string) *QuantitativeGoal {
	g := NewQuantitativeGoal("Run", "", day(-30), day(30), decimal.RequireFromString(target), "miles")
	g.ID = 1
	for _, v := range values {
		g.Append(entryAt(day(0), v))
	}
	return g
}

func timeBased(frequency Frequency, days ...int) *TimeBasedGoal {
	g := NewTimeBasedGoal("Meditate", "", day(-60), day(60), frequency)
	g.ID = 2
	for _, d := range days {
		g.Append(entryAt(day(d), "1"))
	}
	return g
}

func TestAppendSetsGoalAndDefaultDate(t *testing.T) {
	g := quantitative("10")
	entry := &ProgressEntry{Value: decimal.NewFromInt(1)}

	before := time.Now()
	g.Append(entry)

	assert.Equal(t, int64(1), entry.GoalID)
	assert.False(t, entry.LoggedAt.Before(before))
	assert.Len(t, g.Entries, 1)
}

func TestIsPersisted(t *testing.T) {
	g := NewQuantitativeGoal("x", "", now, now, decimal.NewFromInt(1), "")
	assert.False(t, g.IsPersisted())
	g.ID = 7
	assert.True(t, g.IsPersisted())
}

func TestQuantitativeProgress(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		values   []string
		text     string
		status   GoalStatus
		complete bool
	}{
		{"partial", "100", []string{"25", "12.5"}, "37.5% Complete (37.5 of 100.0 miles)", GoalStatusInProgress, false},
		{"exact target", "100", []string{"60", "40"}, "100.0% Complete (100.0 of 100.0 miles)", GoalStatusComplete, true},
		{"overshoot capped", "100", []string{"150"}, "100.0% Complete (150.0 of 100.0 miles)", GoalStatusComplete, true},
		{"empty ledger", "50", nil, "0.0% Complete (0.0 of 50.0 miles)", GoalStatusInProgress, false},
		{"zero target", "0", []string{"10"}, "Target Invalid (0%)", GoalStatusInProgress, false},
		{"negative target", "-5", []string{"10"}, "Target Invalid (0%)", GoalStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := quantitative(tt.target, tt.values...)
			p := g.DeriveProgress(now)

			assert.Equal(t, tt.text, p.Text)
			assert.Equal(t, tt.status, g.Status)
			assert.Equal(t, tt.complete, p.StatusChanged)
		})
	}
}

func TestQuantitativeSumIsExact(t *testing.T) {
	g := quantitative("1")
	for range 10 {
		g.Append(entryAt(day(0), "0.1"))
	}

	assert.True(t, g.CurrentValue().Equal(decimal.NewFromInt(1)))
	g.DeriveProgress(now)
	assert.Equal(t, GoalStatusComplete, g.Status)
}

func TestQuantitativeNeverDowngradesStatus(t *testing.T) {
	g := quantitative("100", "10")
	g.Status = GoalStatusComplete

	p := g.DeriveProgress(now)
	assert.Equal(t, GoalStatusComplete, g.Status)
	assert.False(t, p.StatusChanged)
}

func TestQuantitativeKeepsCancelled(t *testing.T) {
	g := quantitative("10", "20")
	g.Status = GoalStatusCancelled

	p := g.DeriveProgress(now)
	assert.Equal(t, GoalStatusCancelled, g.Status)
	assert.False(t, p.StatusChanged)
}

func TestPercentComplete(t *testing.T) {
	pct, ok := quantitative("200", "50").PercentComplete()
	require.True(t, ok)
	assert.Equal(t, "25", pct.String())

	pct, ok = quantitative("10", "50").PercentComplete()
	require.True(t, ok)
	assert.Equal(t, "100", pct.String())

	_, ok = quantitative("0", "50").PercentComplete()
	assert.False(t, ok)
}

func TestDeriveProgressIsRepeatable(t *testing.T) {
	goals := []Tracker{
		quantitative("100", "40", "60"),
		timeBased(FrequencyDaily, 0, -1, -2),
	}
	for _, g := range goals {
		first := g.DeriveProgress(now)
		status := g.Base().Status
		second := g.DeriveProgress(now)

		assert.Equal(t, first.Text, second.Text)
		assert.Equal(t, status, g.Base().Status)
		assert.False(t, second.StatusChanged)
	}
}

func TestTimeBasedProgressText(t *testing.T) {
	g := timeBased(FrequencyDaily, 0, -1, -2)
	p := g.DeriveProgress(now)

	assert.Equal(t, "3 Day Streak!", p.Text)
	assert.Equal(t, 3, g.CurrentStreak())
	assert.False(t, p.StatusChanged)

	w := timeBased(FrequencyWeekly)
	assert.Equal(t, "0 Week Streak!", w.DeriveProgress(now).Text)

	m := timeBased(FrequencyMonthly, 0)
	assert.Equal(t, "1 Month Streak!", m.DeriveProgress(now).Text)
}

func TestTimeBasedExpiry(t *testing.T) {
	g := timeBased(FrequencyDaily)
	g.EndDate = day(-1)

	p := g.DeriveProgress(now)
	assert.True(t, p.StatusChanged)
	assert.Equal(t, GoalStatusComplete, g.Status)
	assert.Equal(t, 0, g.CurrentStreak())

	// Ending today has not expired yet.
	open := timeBased(FrequencyDaily, 0)
	open.EndDate = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	assert.False(t, open.DeriveProgress(now).StatusChanged)
	assert.Equal(t, GoalStatusInProgress, open.Status)

	cancelled := timeBased(FrequencyDaily)
	cancelled.EndDate = day(-10)
	cancelled.Status = GoalStatusCancelled
	cancelled.DeriveProgress(now)
	assert.Equal(t, GoalStatusCancelled, cancelled.Status)

	noEnd := timeBased(FrequencyDaily)
	noEnd.EndDate = time.Time{}
	noEnd.DeriveProgress(now)
	assert.Equal(t, GoalStatusInProgress, noEnd.Status)
}

func TestFrequencyHelpers(t *testing.T) {
	assert.True(t, FrequencyWeekly.Valid())
	assert.False(t, Frequency("hourly").Valid())
	assert.Equal(t, "", Frequency("hourly").Unit())

	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), FrequencyMonthly.Previous(march))
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC), FrequencyWeekly.Previous(march))
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), FrequencyDaily.Previous(march))
}

func TestGoalStatusValid(t *testing.T) {
	assert.True(t, GoalStatusCancelled.Valid())
	assert.False(t, GoalStatus("paused").Valid())
}
