package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltracker/internal/model"
)

type AchievementRepository interface {
	Templates() ([]*model.AchievementTemplate, error)
	CreateTemplate(t *model.AchievementTemplate) error
	Logs() ([]*model.AchievementLog, error)
	LogsByGoal(goalID int64) ([]*model.AchievementLog, error)
	CreateLog(l *model.AchievementLog) error
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

const (
	templateColumns = `id, name, description, unlock_condition, repeatable, created_at`
	logColumns      = `id, goal_id, achievement_id, earned_at`
)

// Templates returns the catalog in registration order.
func (r *achievementRepository) Templates() ([]*model.AchievementTemplate, error) {
	var templates []*model.AchievementTemplate
	query := `SELECT ` + templateColumns + ` FROM achievement_templates ORDER BY id ASC`

	err := r.db.Select(&templates, query)
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *achievementRepository) CreateTemplate(t *model.AchievementTemplate) error {
	now := time.Now().UTC()
	query := `INSERT INTO achievement_templates (name, description, unlock_condition, repeatable, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.db.QueryRowx(query,
		t.Name,
		t.Description,
		t.Condition,
		t.Repeatable,
		now,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert achievement template: %w", err)
	}

	t.CreatedAt = now
	return nil
}

func (r *achievementRepository) Logs() ([]*model.AchievementLog, error) {
	var logs []*model.AchievementLog
	query := `SELECT ` + logColumns + ` FROM achievement_logs ORDER BY id ASC`

	err := r.db.Select(&logs, query)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *achievementRepository) LogsByGoal(goalID int64) ([]*model.AchievementLog, error) {
	var logs []*model.AchievementLog
	query := `SELECT ` + logColumns + ` FROM achievement_logs WHERE goal_id = $1 ORDER BY earned_at ASC, id ASC`

	err := r.db.Select(&logs, query, goalID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *achievementRepository) CreateLog(l *model.AchievementLog) error {
	if l.EarnedAt.IsZero() {
		l.EarnedAt = time.Now()
	}

	query := `INSERT INTO achievement_logs (goal_id, achievement_id, earned_at)
	          VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRowx(query, l.GoalID, l.AchievementID, l.EarnedAt.UTC()).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to insert achievement log: %w", err)
	}

	return nil
}
