package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltracker/internal/model"
)

// ProgressEntryRepository is append-only: entries are never updated.
type ProgressEntryRepository interface {
	Create(entry *model.ProgressEntry) error
	Entries(goalID int64) ([]*model.ProgressEntry, error)
	AllEntries() (map[int64][]*model.ProgressEntry, error)
}

type progressEntryRepository struct {
	db *sqlx.DB
}

func NewProgressEntryRepository(db *sqlx.DB) ProgressEntryRepository {
	return &progressEntryRepository{db: db}
}

const entryColumns = `id, goal_id, logged_at, value, note, created_at`

func (r *progressEntryRepository) Create(entry *model.ProgressEntry) error {
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}
	now := time.Now().UTC()

	query := `INSERT INTO progress_entries (goal_id, logged_at, value, note, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.db.QueryRowx(query,
		entry.GoalID,
		entry.LoggedAt.UTC(),
		entry.Value,
		entry.Note,
		now,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert progress entry: %w", err)
	}

	entry.CreatedAt = now
	return nil
}

func (r *progressEntryRepository) Entries(goalID int64) ([]*model.ProgressEntry, error) {
	var entries []*model.ProgressEntry
	query := `SELECT ` + entryColumns + ` FROM progress_entries WHERE goal_id = $1 ORDER BY logged_at ASC, id ASC`

	err := r.db.Select(&entries, query, goalID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// AllEntries returns every entry grouped by goal ID.
func (r *progressEntryRepository) AllEntries() (map[int64][]*model.ProgressEntry, error) {
	var entries []*model.ProgressEntry
	query := `SELECT ` + entryColumns + ` FROM progress_entries ORDER BY goal_id ASC, logged_at ASC, id ASC`

	err := r.db.Select(&entries, query)
	if err != nil {
		return nil, err
	}

	byGoal := make(map[int64][]*model.ProgressEntry)
	for _, e := range entries {
		byGoal[e.GoalID] = append(byGoal[e.GoalID], e)
	}

	return byGoal, nil
}
