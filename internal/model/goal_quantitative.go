package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// QuantitativeGoal is tracked against a numeric target.
type QuantitativeGoal struct {
	Goal
	TargetValue decimal.Decimal
	Unit        string
}

func NewQuantitativeGoal(title, description string, start, end time.Time, target decimal.Decimal, unit string) *QuantitativeGoal {
	return &QuantitativeGoal{
		Goal: Goal{
			Type:        GoalTypeQuantitative,
			Title:       title,
			Description: description,
			Status:      GoalStatusInProgress,
			StartDate:   start,
			EndDate:     end,
		},
		TargetValue: target,
		Unit:        unit,
	}
}

// CurrentValue is the exact sum of every logged value.
func (g *QuantitativeGoal) CurrentValue() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range g.Entries {
		sum = sum.Add(e.Value)
	}
	return sum
}

// PercentComplete returns the progress towards the target capped at 100.
// ok is false when the target is not positive.
func (g *QuantitativeGoal) PercentComplete() (pct decimal.Decimal, ok bool) {
	if !g.TargetValue.IsPositive() {
		return decimal.Zero, false
	}
	current := g.CurrentValue()
	if current.GreaterThanOrEqual(g.TargetValue) {
		return hundred, true
	}
	return current.Div(g.TargetValue).Mul(hundred), true
}

func (g *QuantitativeGoal) DeriveProgress(now time.Time) Progress {
	if !g.TargetValue.IsPositive() {
		return Progress{Text: "Target Invalid (0%)"}
	}

	current := g.CurrentValue()
	pct, _ := g.PercentComplete()

	var changed bool
	if current.GreaterThanOrEqual(g.TargetValue) {
		changed = g.complete()
	}

	target := g.TargetValue.StringFixed(1)
	if g.Unit != "" {
		target += " " + g.Unit
	}

	return Progress{
		Text:          fmt.Sprintf("%s%% Complete (%s of %s)", pct.StringFixed(1), current.StringFixed(1), target),
		StatusChanged: changed,
	}
}
