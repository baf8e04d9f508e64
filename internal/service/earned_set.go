package service

import "github.com/templui/goaltracker/internal/model"

// EarnedSet tracks which (goal, achievement) pairs have at least one log.
// It is not safe for concurrent use; AchievementService guards it.
type EarnedSet struct {
	pairs map[model.EarnedPair]struct{}
	byAch map[int64]int
}

func NewEarnedSet() *EarnedSet {
	return &EarnedSet{
		pairs: make(map[model.EarnedPair]struct{}),
		byAch: make(map[int64]int),
	}
}

// Add inserts pair and reports whether it was new.
func (s *EarnedSet) Add(pair model.EarnedPair) bool {
	if _, ok := s.pairs[pair]; ok {
		return false
	}
	s.pairs[pair] = struct{}{}
	s.byAch[pair.AchievementID]++
	return true
}

func (s *EarnedSet) Contains(pair model.EarnedPair) bool {
	_, ok := s.pairs[pair]
	return ok
}

// Unlocked reports whether any goal has earned the achievement.
func (s *EarnedSet) Unlocked(achievementID int64) bool {
	return s.byAch[achievementID] > 0
}

func (s *EarnedSet) Len() int {
	return len(s.pairs)
}

// RemoveGoal drops every pair of goalID and returns how many were removed.
func (s *EarnedSet) RemoveGoal(goalID int64) int {
	var removed int
	for pair := range s.pairs {
		if pair.GoalID != goalID {
			continue
		}
		delete(s.pairs, pair)
		s.byAch[pair.AchievementID]--
		if s.byAch[pair.AchievementID] <= 0 {
			delete(s.byAch, pair.AchievementID)
		}
		removed++
	}
	return removed
}
