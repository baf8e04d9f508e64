package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/templui/goaltracker/internal/condition"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/validation"
)

var (
	ErrNotInitialized  = errors.New("achievement engine not initialized")
	ErrInvalidTemplate = errors.New("invalid achievement template")
)

// CompletedCounter counts complete goals in the store.
type CompletedCounter interface {
	CountCompleted() (int, error)
}

// Notifier is told about every unlock after its log has been persisted.
type Notifier interface {
	AchievementUnlocked(unlock model.Unlock)
}

// AchievementService decides which achievements a goal has earned. A
// non-repeatable template unlocks at most once per goal.
type AchievementService struct {
	mu sync.Mutex

	repo      repository.AchievementRepository
	counter   CompletedCounter
	notifier  Notifier
	evaluator *condition.Evaluator
	now       func() time.Time

	initialized bool
	templates   []*model.AchievementTemplate
	earned      *EarnedSet
}

func NewAchievementService(
	repo repository.AchievementRepository,
	counter CompletedCounter,
	notifier Notifier,
) *AchievementService {
	return &AchievementService{
		repo:      repo,
		counter:   counter,
		notifier:  notifier,
		evaluator: condition.NewEvaluator(slog.Default()),
		now:       time.Now,
	}
}

// Initialize loads the catalog and earned pairs. Calling it again is a no-op
// until Reset.
func (s *AchievementService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	templates, err := s.repo.Templates()
	if err != nil {
		return fmt.Errorf("failed to load achievement templates: %w", err)
	}

	logs, err := s.repo.Logs()
	if err != nil {
		return fmt.Errorf("failed to load achievement logs: %w", err)
	}

	earned := NewEarnedSet()
	for _, l := range logs {
		earned.Add(l.Pair())
	}

	s.templates = templates
	s.earned = earned
	s.initialized = true

	slog.Info("achievement engine initialized", "templates", len(templates), "earned", earned.Len())
	return nil
}

// Reset drops the cached catalog so the next Initialize reloads it.
func (s *AchievementService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates = nil
	s.earned = nil
	s.initialized = false
}

// ForgetGoal drops the earned pairs of a deleted goal so Status matches the
// store, whose logs are removed with the goal.
func (s *AchievementService) ForgetGoal(goalID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.earned == nil {
		return
	}
	if n := s.earned.RemoveGoal(goalID); n > 0 {
		slog.Debug("forgot earned achievements", "goal_id", goalID, "pairs", n)
	}
}

// CheckAndUnlock evaluates every template against goal in registration order
// and persists the ones it satisfies. Goals without an ID are ignored.
//
// If a log cannot be persisted the check stops and the unlocks made so far
// are returned with the error.
func (s *AchievementService) CheckAndUnlock(goal model.Tracker) ([]model.Unlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if goal == nil || !goal.Base().IsPersisted() {
		return nil, nil
	}

	base := goal.Base()
	completed := s.completedOnce()

	var unlocks []model.Unlock
	for _, t := range s.templates {
		pair := model.EarnedPair{GoalID: base.ID, AchievementID: t.ID}
		if !t.Repeatable && s.earned.Contains(pair) {
			continue
		}

		if !s.evaluator.Evaluate(t.Condition, goal, completed) {
			continue
		}

		l := &model.AchievementLog{
			GoalID:        base.ID,
			AchievementID: t.ID,
			EarnedAt:      s.now(),
		}
		err := s.repo.CreateLog(l)
		if err != nil {
			return unlocks, fmt.Errorf("failed to record achievement %q for goal %d: %w", t.Name, base.ID, err)
		}

		s.earned.Add(pair)

		unlock := model.Unlock{Goal: base, Template: t, Log: l}
		if s.notifier != nil {
			s.notifier.AchievementUnlocked(unlock)
		}
		unlocks = append(unlocks, unlock)
	}

	return unlocks, nil
}

// completedOnce returns a counter that queries the store on first use only.
func (s *AchievementService) completedOnce() condition.CompletedCounter {
	if s.counter == nil {
		return nil
	}

	var (
		done  bool
		count int
		err   error
	)
	return func() (int, error) {
		if !done {
			count, err = s.counter.CountCompleted()
			done = true
		}
		return count, err
	}
}

// RegisterTemplate validates and stores t, assigning its ID. Later checks see
// it immediately.
func (s *AchievementService) RegisterTemplate(t *model.AchievementTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	return s.register(t)
}

func (s *AchievementService) register(t *model.AchievementTemplate) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Condition = strings.TrimSpace(t.Condition)

	err := validation.ValidateTemplateName(t.Name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	err = condition.Validate(t.Condition)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	if s.hasTemplate(t.Name) {
		return fmt.Errorf("%w: %q already exists", ErrInvalidTemplate, t.Name)
	}

	err = s.repo.CreateTemplate(t)
	if err != nil {
		return fmt.Errorf("failed to create achievement template: %w", err)
	}

	s.templates = append(s.templates, t)
	slog.Info("achievement template registered", "achievement_id", t.ID, "name", t.Name)
	return nil
}

func (s *AchievementService) hasTemplate(name string) bool {
	for _, t := range s.templates {
		if t.Name == name {
			return true
		}
	}
	return false
}

// SeedDefaultTemplates registers the starter catalog entries that are not in
// the store yet and returns how many were added.
func (s *AchievementService) SeedDefaultTemplates() (int, error) {
	defaults, err := DefaultTemplates()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, ErrNotInitialized
	}

	added := 0
	for _, t := range defaults {
		if s.hasTemplate(t.Name) {
			continue
		}
		err := s.register(t)
		if err != nil {
			return added, err
		}
		added++
	}

	if added > 0 {
		slog.Info("seeded achievement templates", "count", added)
	}
	return added, nil
}

// Status splits the catalog into achievements earned by at least one goal and
// those nobody has earned yet.
func (s *AchievementService) Status() (unlocked, locked []*model.AchievementTemplate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, nil, ErrNotInitialized
	}

	for _, t := range s.templates {
		if s.earned.Unlocked(t.ID) {
			unlocked = append(unlocked, t)
		} else {
			locked = append(locked, t)
		}
	}
	return unlocked, locked, nil
}

// Templates returns the catalog in registration order.
func (s *AchievementService) Templates() ([]*model.AchievementTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return append([]*model.AchievementTemplate(nil), s.templates...), nil
}

// Earned returns every unlock recorded for a goal, oldest first.
func (s *AchievementService) Earned(goal *model.Goal) ([]model.Unlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	logs, err := s.repo.LogsByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement logs: %w", err)
	}

	byID := make(map[int64]*model.AchievementTemplate, len(s.templates))
	for _, t := range s.templates {
		byID[t.ID] = t
	}

	unlocks := make([]model.Unlock, 0, len(logs))
	for _, l := range logs {
		t, ok := byID[l.AchievementID]
		if !ok {
			continue
		}
		unlocks = append(unlocks, model.Unlock{Goal: goal, Template: t, Log: l})
	}
	return unlocks, nil
}
