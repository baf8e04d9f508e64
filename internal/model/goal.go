package model

import (
	"time"
)

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusComplete   GoalStatus = "complete"
	GoalStatusCancelled  GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusInProgress, GoalStatusComplete, GoalStatusCancelled:
		return true
	}
	return false
}

type GoalType string

const (
	GoalTypeQuantitative GoalType = "quantitative"
	GoalTypeTimeBased    GoalType = "time_based"
)

// Goal holds the attributes shared by every goal variant plus its ledger.
type Goal struct {
	ID          int64      `db:"id"`
	Type        GoalType   `db:"goal_type"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      GoalStatus `db:"status"`
	StartDate   time.Time  `db:"start_date"`
	EndDate     time.Time  `db:"end_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	Entries []*ProgressEntry `db:"-"`
}

// Progress is the result of deriving a goal's state from its ledger.
type Progress struct {
	Text          string
	StatusChanged bool
}

// Tracker is implemented by every goal variant.
type Tracker interface {
	Base() *Goal
	// DeriveProgress recomputes the variant's state from the ledger. It must
	// run after every ledger mutation and after every load.
	DeriveProgress(now time.Time) Progress
}

func (g *Goal) Base() *Goal {
	return g
}

// IsPersisted reports whether the store has assigned an identity.
func (g *Goal) IsPersisted() bool {
	return g.ID > 0
}

// Append adds an entry to the ledger. The caller derives progress afterwards.
func (g *Goal) Append(entry *ProgressEntry) {
	entry.GoalID = g.ID
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}
	g.Entries = append(g.Entries, entry)
}

// complete moves an in-progress goal to complete. Other states are left alone.
func (g *Goal) complete() bool {
	if g.Status != GoalStatusInProgress {
		return false
	}
	g.Status = GoalStatusComplete
	return true
}
