package model

import (
	"time"
)

// AchievementTemplate is an administrator-defined unlock rule.
type AchievementTemplate struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Condition   string    `db:"unlock_condition"`
	Repeatable  bool      `db:"repeatable"`
	CreatedAt   time.Time `db:"created_at"`
}

// AchievementLog records one unlock of a template for a goal.
type AchievementLog struct {
	ID            int64     `db:"id"`
	GoalID        int64     `db:"goal_id"`
	AchievementID int64     `db:"achievement_id"`
	EarnedAt      time.Time `db:"earned_at"`
}

func (l *AchievementLog) Pair() EarnedPair {
	return EarnedPair{GoalID: l.GoalID, AchievementID: l.AchievementID}
}

type EarnedPair struct {
	GoalID        int64
	AchievementID int64
}

// Unlock is emitted every time a check unlocks a template for a goal.
type Unlock struct {
	Goal     *Goal
	Template *AchievementTemplate
	Log      *AchievementLog
}
