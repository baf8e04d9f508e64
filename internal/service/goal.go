package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/timeutil"
	"github.com/templui/goaltracker/internal/validation"
)

var (
	ErrInvalidGoal       = errors.New("invalid goal")
	ErrGoalNotInProgress = errors.New("goal is not in progress")
)

// GoalResult is a goal with its derived progress and the achievements the
// last operation unlocked.
type GoalResult struct {
	Goal     model.Tracker
	Progress model.Progress
	Unlocks  []model.Unlock
}

type QuantitativeInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	TargetValue decimal.Decimal
	Unit        string
}

type TimeBasedInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Frequency   model.Frequency
}

// GoalService serializes goal mutations and runs the achievement check after
// every one of them.
type GoalService struct {
	mu sync.Mutex

	goals        repository.GoalRepository
	entries      repository.ProgressEntryRepository
	achievements *AchievementService
	loc          *time.Location
	now          func() time.Time
}

func NewGoalService(
	goals repository.GoalRepository,
	entries repository.ProgressEntryRepository,
	achievements *AchievementService,
	loc *time.Location,
) *GoalService {
	if loc == nil {
		loc = time.Local
	}
	return &GoalService{
		goals:        goals,
		entries:      entries,
		achievements: achievements,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *GoalService) clock() time.Time {
	return s.now().In(s.loc)
}

func validateDates(start, end time.Time) error {
	if !end.IsZero() && timeutil.DateIn(end, start.Location()).Before(timeutil.Date(start)) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidGoal)
	}
	return nil
}

func (s *GoalService) CreateQuantitative(in QuantitativeInput) (*GoalResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	err := validation.ValidateTitle(in.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	}
	if !in.TargetValue.IsPositive() {
		return nil, fmt.Errorf("%w: target value must be positive", ErrInvalidGoal)
	}
	if in.StartDate.IsZero() {
		in.StartDate = s.clock()
	}
	err = validateDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	goal := model.NewQuantitativeGoal(in.Title, in.Description, in.StartDate, in.EndDate, in.TargetValue, strings.TrimSpace(in.Unit))
	return s.create(goal)
}

func (s *GoalService) CreateTimeBased(in TimeBasedInput) (*GoalResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	err := validation.ValidateTitle(in.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	}
	if !in.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidGoal, in.Frequency)
	}
	if in.StartDate.IsZero() {
		in.StartDate = s.clock()
	}
	err = validateDates(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	goal := model.NewTimeBasedGoal(in.Title, in.Description, in.StartDate, in.EndDate, in.Frequency)
	return s.create(goal)
}

func (s *GoalService) create(goal model.Tracker) (*GoalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.goals.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "goal_id", goal.Base().ID, "type", goal.Base().Type)
	return &GoalResult{Goal: goal, Progress: goal.DeriveProgress(s.clock())}, nil
}

// Goal loads and derives a goal. If loading completes it, the achievement
// check runs and its unlocks are returned with the result.
func (s *GoalService) Goal(id int64) (*GoalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, progress, unlocks, err := s.load(id)
	if goal == nil {
		return nil, err
	}
	return &GoalResult{Goal: goal, Progress: progress, Unlocks: unlocks}, err
}

func (s *GoalService) Goals() ([]*GoalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.goals.Goals()
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	entries, err := s.entries.AllEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load progress entries: %w", err)
	}

	now := s.clock()
	results := make([]*GoalResult, 0, len(goals))
	for _, g := range goals {
		g.Base().Entries = entries[g.Base().ID]
		progress, unlocks, err := s.derive(g, now)
		results = append(results, &GoalResult{Goal: g, Progress: progress, Unlocks: unlocks})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// LogProgress appends an entry to an in-progress goal, derives the new state
// and checks achievements. A zero at means now.
func (s *GoalService) LogProgress(id int64, value decimal.Decimal, note string, at time.Time) (*GoalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, _, _, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if goal.Base().Status != model.GoalStatusInProgress {
		return nil, fmt.Errorf("%w: goal %d is %s", ErrGoalNotInProgress, id, goal.Base().Status)
	}

	now := s.clock()
	if at.IsZero() {
		at = now
	}

	entry := &model.ProgressEntry{GoalID: id, LoggedAt: at, Value: value, Note: strings.TrimSpace(note)}
	err = s.entries.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log progress: %w", err)
	}
	goal.Base().Append(entry)

	slog.Info("progress logged", "goal_id", id, "entry_id", entry.ID, "value", value.String())

	progress, unlocks, err := s.derive(goal, now)
	result := &GoalResult{Goal: goal, Progress: progress, Unlocks: unlocks}
	if err != nil {
		return result, err
	}
	if progress.StatusChanged {
		return result, nil
	}

	unlocks, err = s.check(goal)
	result.Unlocks = append(result.Unlocks, unlocks...)
	return result, err
}

func (s *GoalService) Cancel(id int64) (*GoalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, progress, _, err := s.load(id)
	if err != nil {
		return nil, err
	}
	base := goal.Base()
	if base.Status != model.GoalStatusInProgress {
		return nil, fmt.Errorf("%w: goal %d is %s", ErrGoalNotInProgress, id, base.Status)
	}

	base.Status = model.GoalStatusCancelled
	err = s.goals.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel goal: %w", err)
	}

	slog.Info("goal cancelled", "goal_id", id)

	unlocks, err := s.check(goal)
	return &GoalResult{Goal: goal, Progress: progress, Unlocks: unlocks}, err
}

// Recompute re-derives a goal from its ledger and checks achievements again.
func (s *GoalService) Recompute(id int64) (*GoalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, progress, loadUnlocks, err := s.load(id)
	if goal == nil {
		return nil, err
	}
	result := &GoalResult{Goal: goal, Progress: progress, Unlocks: loadUnlocks}
	if err != nil || progress.StatusChanged {
		return result, err
	}

	unlocks, err := s.check(goal)
	result.Unlocks = unlocks
	return result, err
}

// RecomputeAll runs Recompute for every stored goal in id order, stopping at
// the first failure.
func (s *GoalService) RecomputeAll() ([]*GoalResult, error) {
	s.mu.Lock()
	goals, err := s.goals.Goals()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	results := make([]*GoalResult, 0, len(goals))
	for _, g := range goals {
		r, err := s.Recompute(g.Base().ID)
		if r != nil {
			results = append(results, r)
		}
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (s *GoalService) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.goals.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.achievements.ForgetGoal(id)

	slog.Info("goal deleted", "goal_id", id)
	return nil
}

// Achievements lists the unlocks recorded for a goal.
func (s *GoalService) Achievements(id int64) ([]model.Unlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, err := s.goals.ByID(id)
	if err != nil {
		return nil, err
	}
	return s.achievements.Earned(goal.Base())
}

// load reads a goal with its ledger and derives its state. A status change
// found while deriving is written back and checked for achievements. The goal
// is returned whenever it was read, even if that check fails.
func (s *GoalService) load(id int64) (model.Tracker, model.Progress, []model.Unlock, error) {
	goal, err := s.goals.ByID(id)
	if err != nil {
		return nil, model.Progress{}, nil, err
	}

	entries, err := s.entries.Entries(id)
	if err != nil {
		return nil, model.Progress{}, nil, fmt.Errorf("failed to load progress entries: %w", err)
	}
	goal.Base().Entries = entries

	progress, unlocks, err := s.derive(goal, s.clock())
	return goal, progress, unlocks, err
}

// derive updates the goal's derived state. When its status changes the goal
// is persisted and its achievements are checked, so completion-count rules
// see every completion in order.
func (s *GoalService) derive(goal model.Tracker, now time.Time) (model.Progress, []model.Unlock, error) {
	progress := goal.DeriveProgress(now)
	if !progress.StatusChanged {
		return progress, nil, nil
	}

	err := s.goals.Update(goal)
	if err != nil {
		return progress, nil, fmt.Errorf("failed to update goal status: %w", err)
	}
	slog.Info("goal status changed", "goal_id", goal.Base().ID, "status", goal.Base().Status)

	unlocks, err := s.check(goal)
	return progress, unlocks, err
}

func (s *GoalService) check(goal model.Tracker) ([]model.Unlock, error) {
	unlocks, err := s.achievements.CheckAndUnlock(goal)
	if err != nil {
		return unlocks, fmt.Errorf("failed to check achievements: %w", err)
	}
	return unlocks, nil
}
