package service

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltracker/internal/condition"
)

func TestDefaultTemplates(t *testing.T) {
	templates, err := DefaultTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 8)

	want := []struct{ name, cond, desc string }{
		{"Off the Starting Blocks", "ProgressEntries.Count == 1", "Log your very first progress entry for any goal."},
		{"Getting Consistent", "CurrentStreak >= 3", "Achieve a 3-day streak on a Time-Based Goal."},
		{"Weekly Warrior", "CurrentStreak >= 7", "Achieve a 7-day streak on a Time-Based Goal."},
		{"Habit Master", "CurrentStreak >= 30", "Achieve a 30-day streak on a Time-Based Goal."},
		{"One Down!", "GlobalCompletedGoalCount == 1", "Complete your first goal."},
		{"Five-Star Finisher", "GlobalCompletedGoalCount >= 5", "Complete 5 goals."},
		{"Goal Getter", "GlobalCompletedGoalCount >= 10", "Complete 10 goals."},
		{"Goal Hoarder", "GlobalCompletedGoalCount >= 20", "Complete 20 goals."},
	}
	for i, w := range want {
		assert.Equal(t, w.name, templates[i].Name)
		assert.Equal(t, w.cond, templates[i].Condition)
		assert.Equal(t, w.desc, templates[i].Description)
		assert.False(t, templates[i].Repeatable)
		assert.NoError(t, condition.Validate(templates[i].Condition), w.name)
	}
}

func TestLoadCatalogOrdersAndValidates(t *testing.T) {
	fsys := fstest.MapFS{
		"c/b.md":      {Data: []byte("---\nname: Second\ncondition: GoalID == 2\norder: 2\nrepeatable: true\n---\nTwo.\n")},
		"c/a.md":      {Data: []byte("---\nname: First\ncondition: GoalID == 1\norder: 1\n---\nOne.\n")},
		"c/notes.txt": {Data: []byte("ignored")},
	}

	templates, err := loadCatalog(fsys, "c")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "First", templates[0].Name)
	assert.Equal(t, "Second", templates[1].Name)
	assert.True(t, templates[1].Repeatable)

	fsys["c/c.md"] = &fstest.MapFile{Data: []byte("---\nname: Broken\n---\nNo condition.\n")}
	_, err = loadCatalog(fsys, "c")
	assert.Error(t, err)
}
