// Package condition evaluates achievement unlock conditions of the form
// "<selector> <operator> <literal>" against a goal.
package condition

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/templui/goaltracker/internal/model"
)

// GlobalCompletedGoalCount selects the number of completed goals across the
// whole store. It only matches while the evaluated goal is complete.
const GlobalCompletedGoalCount = "GlobalCompletedGoalCount"

const countSuffix = ".Count"

var (
	ErrMalformedCondition  = errors.New("condition must have exactly three tokens")
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrUnknownSelector     = errors.New("unknown selector")
	ErrInvalidLiteral      = errors.New("invalid literal")
	ErrUnsupportedValue    = errors.New("selector has no comparable value")
	ErrCountUnavailable    = errors.New("completed goal count unavailable")
	ErrNilGoal             = errors.New("goal is nil")
)

type Operator string

const (
	OpGreaterOrEqual Operator = ">="
	OpEqual          Operator = "=="
)

func (op Operator) compareInts(a, b int64) bool {
	switch op {
	case OpGreaterOrEqual:
		return a >= b
	case OpEqual:
		return a == b
	}
	return false
}

func (op Operator) compareDecimals(a, b decimal.Decimal) bool {
	switch op {
	case OpGreaterOrEqual:
		return a.GreaterThanOrEqual(b)
	case OpEqual:
		return a.Equal(b)
	}
	return false
}

type Expression struct {
	Selector string
	Operator Operator
	Literal  string
}

func (e Expression) String() string {
	return fmt.Sprintf("%s %s %s", e.Selector, e.Operator, e.Literal)
}

// Parse splits a condition into its three tokens and checks the operator.
func Parse(condition string) (Expression, error) {
	parts := strings.Fields(condition)
	if len(parts) != 3 {
		return Expression{}, fmt.Errorf("%w: got %d", ErrMalformedCondition, len(parts))
	}

	op := Operator(parts[1])
	if op != OpGreaterOrEqual && op != OpEqual {
		return Expression{}, fmt.Errorf("%w: %q", ErrUnsupportedOperator, parts[1])
	}

	return Expression{Selector: parts[0], Operator: op, Literal: parts[2]}, nil
}

// Validate checks that condition parses and names a known selector. It does
// not check the literal, whose kind depends on the goal variant.
func Validate(condition string) error {
	expr, err := Parse(condition)
	if err != nil {
		return err
	}
	if !known(expr.Selector) {
		return fmt.Errorf("%w: %q", ErrUnknownSelector, expr.Selector)
	}
	return nil
}

// CompletedCounter returns the number of complete goals in the store.
type CompletedCounter func() (int, error)

// Check evaluates condition against goal. A non-nil error explains why the
// condition could not be evaluated; the boolean is then always false.
func Check(condition string, goal model.Tracker, completed CompletedCounter) (bool, error) {
	if goal == nil {
		return false, ErrNilGoal
	}

	expr, err := Parse(condition)
	if err != nil {
		return false, err
	}

	if expr.Selector == GlobalCompletedGoalCount {
		return checkGlobal(expr, goal, completed)
	}

	if name, ok := strings.CutSuffix(expr.Selector, countSuffix); ok {
		n, found := collection(goal, name)
		if !found {
			return false, fmt.Errorf("%w: %q", ErrUnknownSelector, expr.Selector)
		}
		return intValue(n).compare(expr.Operator, expr.Literal)
	}

	v, found := attribute(goal, expr.Selector)
	if !found {
		return false, fmt.Errorf("%w: %q", ErrUnknownSelector, expr.Selector)
	}
	if v == nil {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedValue, expr.Selector)
	}
	return v.compare(expr.Operator, expr.Literal)
}

func checkGlobal(expr Expression, goal model.Tracker, completed CompletedCounter) (bool, error) {
	// Fires on the goal that just completed, not as a standing query.
	if goal.Base().Status != model.GoalStatusComplete {
		return false, nil
	}

	target, err := parseInt(expr.Literal)
	if err != nil {
		return false, err
	}

	if completed == nil {
		return false, ErrCountUnavailable
	}
	count, err := completed()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCountUnavailable, err)
	}

	return expr.Operator.compareInts(int64(count), target), nil
}

func parseInt(literal string) (int64, error) {
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLiteral, literal)
	}
	return n, nil
}

// Evaluator wraps Check and logs evaluation failures instead of returning them.
type Evaluator struct {
	log *slog.Logger
}

func NewEvaluator(log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.Default()
	}
	return &Evaluator{log: log}
}

// Evaluate reports whether condition holds for goal. Failures evaluate to false.
func (e *Evaluator) Evaluate(condition string, goal model.Tracker, completed CompletedCounter) bool {
	ok, err := Check(condition, goal, completed)
	if err != nil {
		attrs := []any{"condition", condition, "error", err}
		if goal != nil {
			attrs = append(attrs, "goal_id", goal.Base().ID)
		}
		// A selector of another goal variant is expected on every check.
		if errors.Is(err, ErrUnknownSelector) && Validate(condition) == nil {
			e.log.Debug("achievement condition not applicable to goal variant", attrs...)
			return false
		}
		e.log.Warn("failed to evaluate achievement condition", attrs...)
		return false
	}
	return ok
}
