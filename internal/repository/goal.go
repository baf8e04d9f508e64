package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/templui/goaltracker/internal/model"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrUnknownGoalType = errors.New("unknown goal type")
	ErrInvalidStatus   = errors.New("invalid goal status")
)

// GoalRepository stores goals using one base table and one table per variant.
// Goals are returned without their ledger.
type GoalRepository interface {
	Create(goal model.Tracker) error
	ByID(id int64) (model.Tracker, error)
	Goals() ([]model.Tracker, error)
	Update(goal model.Tracker) error
	Delete(id int64) error
	CountCompleted() (int, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

const goalColumns = `g.id, g.goal_type, g.title, g.description, g.status, g.start_date, g.end_date,
	g.created_at, g.updated_at, q.target_value, q.unit, t.frequency`

const goalFrom = `FROM goals g
	LEFT JOIN quantitative_goals q ON q.goal_id = g.id
	LEFT JOIN time_based_goals t ON t.goal_id = g.id`

// goalRow is one row of the base table joined with both variant tables.
type goalRow struct {
	model.Goal
	TargetValue decimal.NullDecimal `db:"target_value"`
	Unit        sql.NullString      `db:"unit"`
	Frequency   sql.NullString      `db:"frequency"`
}

func (r goalRow) tracker() (model.Tracker, error) {
	if !r.Status.Valid() {
		return nil, fmt.Errorf("%w: %q (goal %d)", ErrInvalidStatus, r.Status, r.ID)
	}

	switch r.Type {
	case model.GoalTypeQuantitative:
		return &model.QuantitativeGoal{
			Goal:        r.Goal,
			TargetValue: r.TargetValue.Decimal,
			Unit:        r.Unit.String,
		}, nil
	case model.GoalTypeTimeBased:
		return &model.TimeBasedGoal{
			Goal:      r.Goal,
			Frequency: model.Frequency(r.Frequency.String),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q (goal %d)", ErrUnknownGoalType, r.Type, r.ID)
}

func (r *goalRepository) Create(goal model.Tracker) error {
	base := goal.Base()

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := `INSERT INTO goals (goal_type, title, description, status, start_date, end_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	var id int64
	err = tx.QueryRowx(query,
		base.Type,
		base.Title,
		base.Description,
		base.Status,
		base.StartDate.UTC(),
		base.EndDate.UTC(),
		now,
		now,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	err = insertVariant(tx, id, goal)
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	base.ID = id
	base.CreatedAt = now
	base.UpdatedAt = now
	for _, e := range base.Entries {
		e.GoalID = id
	}
	return nil
}

func insertVariant(tx *sqlx.Tx, id int64, goal model.Tracker) error {
	var err error
	switch g := goal.(type) {
	case *model.QuantitativeGoal:
		_, err = tx.Exec(`INSERT INTO quantitative_goals (goal_id, target_value, unit) VALUES ($1, $2, $3)`,
			id, g.TargetValue, g.Unit)
	case *model.TimeBasedGoal:
		_, err = tx.Exec(`INSERT INTO time_based_goals (goal_id, frequency) VALUES ($1, $2)`,
			id, g.Frequency)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownGoalType, goal)
	}
	if err != nil {
		return fmt.Errorf("failed to insert goal details: %w", err)
	}
	return nil
}

func (r *goalRepository) ByID(id int64) (model.Tracker, error) {
	row := goalRow{}
	query := `SELECT ` + goalColumns + ` ` + goalFrom + ` WHERE g.id = $1`

	err := r.db.Get(&row, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.tracker()
}

func (r *goalRepository) Goals() ([]model.Tracker, error) {
	var rows []goalRow
	query := `SELECT ` + goalColumns + ` ` + goalFrom + ` ORDER BY g.id ASC`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, err
	}

	goals := make([]model.Tracker, 0, len(rows))
	for _, row := range rows {
		g, err := row.tracker()
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, nil
}

func (r *goalRepository) Update(goal model.Tracker) error {
	base := goal.Base()

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := `UPDATE goals
	          SET title = $1, description = $2, status = $3, start_date = $4, end_date = $5, updated_at = $6
	          WHERE id = $7`

	result, err := tx.Exec(query,
		base.Title,
		base.Description,
		base.Status,
		base.StartDate.UTC(),
		base.EndDate.UTC(),
		now,
		base.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	switch g := goal.(type) {
	case *model.QuantitativeGoal:
		_, err = tx.Exec(`UPDATE quantitative_goals SET target_value = $1, unit = $2 WHERE goal_id = $3`,
			g.TargetValue, g.Unit, base.ID)
	case *model.TimeBasedGoal:
		_, err = tx.Exec(`UPDATE time_based_goals SET frequency = $1 WHERE goal_id = $2`,
			g.Frequency, base.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update goal details: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	base.UpdatedAt = now
	return nil
}

// Delete removes the goal with its ledger, variant row and achievement logs.
func (r *goalRepository) Delete(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// SQLite only cascades with foreign_keys enabled, so children go first.
	children := []string{
		`DELETE FROM achievement_logs WHERE goal_id = $1`,
		`DELETE FROM progress_entries WHERE goal_id = $1`,
		`DELETE FROM quantitative_goals WHERE goal_id = $1`,
		`DELETE FROM time_based_goals WHERE goal_id = $1`,
	}
	for _, query := range children {
		_, err := tx.Exec(query, id)
		if err != nil {
			return fmt.Errorf("failed to delete goal data: %w", err)
		}
	}

	result, err := tx.Exec(`DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return tx.Commit()
}

func (r *goalRepository) CountCompleted() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE status = $1`
	err := r.db.QueryRow(query, model.GoalStatusComplete).Scan(&count)
	return count, err
}
