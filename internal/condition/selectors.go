package condition

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/templui/goaltracker/internal/model"
)

// value is a comparable goal attribute.
type value interface {
	compare(op Operator, literal string) (bool, error)
}

type intValue int64

func (v intValue) compare(op Operator, literal string) (bool, error) {
	target, err := parseInt(literal)
	if err != nil {
		return false, err
	}
	return op.compareInts(int64(v), target), nil
}

type decimalValue decimal.Decimal

func (v decimalValue) compare(op Operator, literal string) (bool, error) {
	target, err := decimal.NewFromString(literal)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidLiteral, literal)
	}
	return op.compareDecimals(decimal.Decimal(v), target), nil
}

var baseAttributes = map[string]func(*model.Goal) value{
	"GoalID": func(g *model.Goal) value { return intValue(g.ID) },
}

var baseCollections = map[string]func(*model.Goal) int{
	"ProgressEntries": func(g *model.Goal) int { return len(g.Entries) },
}

var quantitativeAttributes = map[string]func(*model.QuantitativeGoal) value{
	"CurrentValue": func(g *model.QuantitativeGoal) value { return decimalValue(g.CurrentValue()) },
	"TargetValue":  func(g *model.QuantitativeGoal) value { return decimalValue(g.TargetValue) },
	"PercentComplete": func(g *model.QuantitativeGoal) value {
		pct, ok := g.PercentComplete()
		if !ok {
			return nil
		}
		return decimalValue(pct)
	},
}

var timeBasedAttributes = map[string]func(*model.TimeBasedGoal) value{
	"CurrentStreak": func(g *model.TimeBasedGoal) value { return intValue(g.CurrentStreak()) },
}

// attribute resolves name on the goal's variant first, then on the base goal.
// A found attribute may still carry a nil value when it is currently undefined.
func attribute(goal model.Tracker, name string) (v value, found bool) {
	switch g := goal.(type) {
	case *model.QuantitativeGoal:
		if fn, ok := quantitativeAttributes[name]; ok {
			return fn(g), true
		}
	case *model.TimeBasedGoal:
		if fn, ok := timeBasedAttributes[name]; ok {
			return fn(g), true
		}
	}
	if fn, ok := baseAttributes[name]; ok {
		return fn(goal.Base()), true
	}
	return nil, false
}

// collection resolves the length of a named collection. No variant defines
// its own collections yet, so only the base table is consulted.
func collection(goal model.Tracker, name string) (int, bool) {
	fn, ok := baseCollections[name]
	if !ok {
		return 0, false
	}
	return fn(goal.Base()), true
}

// known reports whether selector names an attribute or collection of any
// goal variant.
func known(selector string) bool {
	if selector == GlobalCompletedGoalCount {
		return true
	}
	if name, ok := strings.CutSuffix(selector, countSuffix); ok {
		_, found := baseCollections[name]
		return found
	}
	_, inBase := baseAttributes[selector]
	_, inQuantitative := quantitativeAttributes[selector]
	_, inTimeBased := timeBasedAttributes[selector]
	return inBase || inQuantitative || inTimeBased
}
