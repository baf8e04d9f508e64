package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProgressEntry struct {
	ID        int64           `db:"id"`
	GoalID    int64           `db:"goal_id"`
	LoggedAt  time.Time       `db:"logged_at"`
	Value     decimal.Decimal `db:"value"`
	Note      string          `db:"note"`
	CreatedAt time.Time       `db:"created_at"`
}
