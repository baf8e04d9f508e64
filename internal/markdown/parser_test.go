package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
}

func TestDocument(t *testing.T) {
	source := []byte(`---
name: Weekly Warrior
order: 3
---
Achieve a 7-day streak
on a Time-Based Goal.

Keep going.
`)

	var m meta
	body, err := NewParser().Document(source, &m)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Warrior", m.Name)
	assert.Equal(t, 3, m.Order)
	assert.Equal(t, "Achieve a 7-day streak on a Time-Based Goal.\nKeep going.", body)
}

func TestDocumentWithoutFrontmatter(t *testing.T) {
	var m meta
	_, err := NewParser().Document([]byte("just text"), &m)
	assert.ErrorIs(t, err, ErrMissingFrontmatter)
}

func TestParseRendersTables(t *testing.T) {
	html, err := NewParser().Parse([]byte("| A | B |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(html), "<table>"), string(html))
	assert.Contains(t, string(html), "<td>1</td>")
}
