package condition

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltracker/internal/model"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func counter(n int) CompletedCounter {
	return func() (int, error) { return n, nil }
}

func quantitativeGoal(target string, values ...string) *model.QuantitativeGoal {
	g := model.NewQuantitativeGoal("Read", "", now, now.AddDate(0, 1, 0), decimal.RequireFromString(target), "pages")
	g.ID = 11
	for _, v := range values {
		g.Append(&model.ProgressEntry{LoggedAt: now, Value: decimal.RequireFromString(v)})
	}
	g.DeriveProgress(now)
	return g
}

func timeBasedGoal(days ...int) *model.TimeBasedGoal {
	g := model.NewTimeBasedGoal("Walk", "", now.AddDate(0, -1, 0), now.AddDate(0, 1, 0), model.FrequencyDaily)
	g.ID = 12
	for _, d := range days {
		g.Append(&model.ProgressEntry{LoggedAt: now.AddDate(0, 0, d), Value: decimal.NewFromInt(1)})
	}
	g.DeriveProgress(now)
	return g
}

func TestParse(t *testing.T) {
	expr, err := Parse("  CurrentStreak   >=  3 ")
	require.NoError(t, err)
	assert.Equal(t, Expression{Selector: "CurrentStreak", Operator: OpGreaterOrEqual, Literal: "3"}, expr)
	assert.Equal(t, "CurrentStreak >= 3", expr.String())

	_, err = Parse("CurrentStreak >= 3 extra")
	assert.ErrorIs(t, err, ErrMalformedCondition)

	_, err = Parse("CurrentStreak")
	assert.ErrorIs(t, err, ErrMalformedCondition)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrMalformedCondition)

	for _, op := range []string{">", "<=", "!=", "=", "<"} {
		_, err = Parse("CurrentStreak " + op + " 3")
		assert.ErrorIs(t, err, ErrUnsupportedOperator, op)
	}
}

func TestValidate(t *testing.T) {
	valid := []string{
		"ProgressEntries.Count == 1",
		"CurrentStreak >= 30",
		"CurrentValue >= 12.5",
		"PercentComplete >= 50",
		"GlobalCompletedGoalCount >= 5",
		"GoalID == 1",
	}
	for _, c := range valid {
		assert.NoError(t, Validate(c), c)
	}

	assert.ErrorIs(t, Validate("Streak >= 3"), ErrUnknownSelector)
	assert.ErrorIs(t, Validate("Tags.Count >= 3"), ErrUnknownSelector)
	assert.ErrorIs(t, Validate("CurrentStreak > 3"), ErrUnsupportedOperator)
}

func TestProgressEntriesCount(t *testing.T) {
	cond := "ProgressEntries.Count == 1"

	ok, err := Check(cond, quantitativeGoal("10", "1"), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check(cond, quantitativeGoal("10"), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Check(cond, quantitativeGoal("10", "1", "2"), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Check("ProgressEntries.Count >= 2", timeBasedGoal(0, -1, -2), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGlobalCompletedGoalCount(t *testing.T) {
	cond := "GlobalCompletedGoalCount >= 5"

	inProgress := quantitativeGoal("100", "10")
	ok, err := Check(cond, inProgress, counter(9))
	require.NoError(t, err)
	assert.False(t, ok, "in-progress goal must not fire even when the count is met")

	complete := quantitativeGoal("100", "100")
	require.Equal(t, model.GoalStatusComplete, complete.Status)

	ok, err = Check(cond, complete, counter(5))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check(cond, complete, counter(4))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Check("GlobalCompletedGoalCount == 1", complete, counter(1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGlobalCountIsLazy(t *testing.T) {
	calls := 0
	count := func() (int, error) {
		calls++
		return 1, nil
	}

	_, err := Check("CurrentValue >= 1", quantitativeGoal("10", "5"), count)
	require.NoError(t, err)
	_, err = Check("GlobalCompletedGoalCount >= 1", quantitativeGoal("10", "5"), count)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)

	_, err = Check("GlobalCompletedGoalCount >= 1", quantitativeGoal("10", "50"), count)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGlobalCountFailures(t *testing.T) {
	complete := quantitativeGoal("1", "1")

	_, err := Check("GlobalCompletedGoalCount >= five", complete, counter(5))
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = Check("GlobalCompletedGoalCount >= 5", complete, nil)
	assert.ErrorIs(t, err, ErrCountUnavailable)

	boom := errors.New("db down")
	_, err = Check("GlobalCompletedGoalCount >= 5", complete, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, ErrCountUnavailable)
	assert.ErrorIs(t, err, boom)
}

func TestDecimalAttributes(t *testing.T) {
	g := quantitativeGoal("100", "12.25", "0.25")

	tests := []struct {
		cond string
		want bool
	}{
		{"CurrentValue >= 12.5", true},
		{"CurrentValue == 12.50", true},
		{"CurrentValue >= 12.51", false},
		{"TargetValue == 100", true},
		{"PercentComplete >= 12.5", true},
		{"PercentComplete >= 13", false},
	}
	for _, tt := range tests {
		ok, err := Check(tt.cond, g, nil)
		require.NoError(t, err, tt.cond)
		assert.Equal(t, tt.want, ok, tt.cond)
	}
}

func TestDecimalLiteralIsLocaleInvariant(t *testing.T) {
	g := quantitativeGoal("100", "12.5")

	_, err := Check("CurrentValue >= 12,5", g, nil)
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestIntegerAttributes(t *testing.T) {
	g := timeBasedGoal(0, -1, -2)

	ok, err := Check("CurrentStreak >= 3", g, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check("CurrentStreak == 2", g, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Check("CurrentStreak >= 2.5", g, nil)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	ok, err = Check("GoalID == 12", g, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSelectorScopedToVariant(t *testing.T) {
	_, err := Check("CurrentStreak >= 1", quantitativeGoal("10", "5"), nil)
	assert.ErrorIs(t, err, ErrUnknownSelector)

	_, err = Check("CurrentValue >= 1", timeBasedGoal(0), nil)
	assert.ErrorIs(t, err, ErrUnknownSelector)

	_, err = Check("Entries.Count >= 1", timeBasedGoal(0), nil)
	assert.ErrorIs(t, err, ErrUnknownSelector)
}

func TestUndefinedValue(t *testing.T) {
	_, err := Check("PercentComplete >= 0", quantitativeGoal("0", "5"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestNilGoal(t *testing.T) {
	_, err := Check("CurrentValue >= 1", nil, nil)
	assert.ErrorIs(t, err, ErrNilGoal)
}

func TestEvaluatorLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	e := NewEvaluator(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.False(t, e.Evaluate("CurrentValue >> 1", quantitativeGoal("10", "5"), nil))
	assert.Contains(t, buf.String(), "failed to evaluate achievement condition")
	assert.Contains(t, buf.String(), "goal_id=11")

	buf.Reset()
	assert.True(t, e.Evaluate("CurrentValue >= 5", quantitativeGoal("10", "5"), nil))
	assert.Empty(t, buf.String())

	assert.False(t, e.Evaluate("CurrentValue >= 5", nil, nil))
}

func TestEvaluatorVariantMismatchLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	e := NewEvaluator(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.False(t, e.Evaluate("CurrentStreak >= 3", quantitativeGoal("10", "5"), nil))
	assert.False(t, e.Evaluate("CurrentValue >= 1", timeBasedGoal(0), nil))
	assert.Empty(t, buf.String())

	assert.False(t, e.Evaluate("Streak >= 3", quantitativeGoal("10", "5"), nil))
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	debug := NewEvaluator(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	assert.False(t, debug.Evaluate("CurrentStreak >= 3", quantitativeGoal("10", "5"), nil))
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "not applicable to goal variant")
}
