package handler

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/service"
)

type entryView struct {
	ID       int64           `json:"id"`
	LoggedAt time.Time       `json:"logged_at"`
	Value    decimal.Decimal `json:"value"`
	Note     string          `json:"note,omitempty"`
}

type unlockView struct {
	AchievementID int64     `json:"achievement_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	GoalID        int64     `json:"goal_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

type goalView struct {
	ID          int64            `json:"id"`
	Type        model.GoalType   `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Status      model.GoalStatus `json:"status"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date,omitempty"`
	Progress    string           `json:"progress"`

	TargetValue     *decimal.Decimal `json:"target_value,omitempty"`
	CurrentValue    *decimal.Decimal `json:"current_value,omitempty"`
	PercentComplete *decimal.Decimal `json:"percent_complete,omitempty"`
	Unit            string           `json:"unit,omitempty"`

	Frequency     model.Frequency `json:"frequency,omitempty"`
	CurrentStreak *int            `json:"current_streak,omitempty"`

	Entries []entryView  `json:"entries,omitempty"`
	Unlocks []unlockView `json:"unlocked,omitempty"`
}

type templateView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Repeatable  bool   `json:"repeatable"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func newGoalView(r *service.GoalResult, withEntries bool) goalView {
	base := r.Goal.Base()
	v := goalView{
		ID:          base.ID,
		Type:        base.Type,
		Title:       base.Title,
		Description: base.Description,
		Status:      base.Status,
		StartDate:   formatDate(base.StartDate),
		EndDate:     formatDate(base.EndDate),
		Progress:    r.Progress.Text,
		Unlocks:     newUnlockViews(r.Unlocks),
	}

	switch g := r.Goal.(type) {
	case *model.QuantitativeGoal:
		target, current := g.TargetValue, g.CurrentValue()
		v.TargetValue, v.CurrentValue, v.Unit = &target, &current, g.Unit
		if pct, ok := g.PercentComplete(); ok {
			pct = pct.Round(1)
			v.PercentComplete = &pct
		}
	case *model.TimeBasedGoal:
		streak := g.CurrentStreak()
		v.Frequency, v.CurrentStreak = g.Frequency, &streak
	}

	if withEntries {
		v.Entries = make([]entryView, len(base.Entries))
		for i, e := range base.Entries {
			v.Entries[i] = entryView{ID: e.ID, LoggedAt: e.LoggedAt, Value: e.Value, Note: e.Note}
		}
	}
	return v
}

func newUnlockViews(unlocks []model.Unlock) []unlockView {
	if len(unlocks) == 0 {
		return nil
	}
	views := make([]unlockView, len(unlocks))
	for i, u := range unlocks {
		views[i] = unlockView{
			AchievementID: u.Template.ID,
			Name:          u.Template.Name,
			Description:   u.Template.Description,
			GoalID:        u.Log.GoalID,
			EarnedAt:      u.Log.EarnedAt,
		}
	}
	return views
}

func newTemplateViews(templates []*model.AchievementTemplate) []templateView {
	views := make([]templateView, len(templates))
	for i, t := range templates {
		views[i] = templateView{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Condition:   t.Condition,
			Repeatable:  t.Repeatable,
		}
	}
	return views
}
