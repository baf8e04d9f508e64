package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	objects     map[string][]byte
	contentType string
	saveErr     error
}

func (m *memoryStorage) Save(_ context.Context, path, contentType string, body io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[path] = data
	m.contentType = contentType
	return nil
}

func (m *memoryStorage) URL(_ context.Context, path string) (string, error) {
	return "https://files.example.com/" + path, nil
}

func reportStack(t *testing.T) (*stack, int64) {
	t.Helper()
	s := newStack(t)
	id := s.quantitative(t, "100")
	_, err := s.goals.LogProgress(id, decimal.NewFromInt(25), "", time.Time{})
	require.NoError(t, err)

	_, err = s.goals.CreateQuantitative(QuantitativeInput{
		Title:       "Read | Write",
		TargetValue: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	return s, id
}

func TestReportMarkdown(t *testing.T) {
	s, id := reportStack(t)
	_, err := s.goals.Cancel(id)
	require.NoError(t, err)

	r := NewReportService(s.goals, s.achievements, nil)
	r.now = func() time.Time { return testNow }

	md, err := r.Markdown()
	require.NoError(t, err)
	out := string(md)

	assert.Contains(t, out, "Generated 2026-10-14 12:00")
	assert.Contains(t, out, "| Goal ID | Title | Status | Progress |")
	assert.Contains(t, out, "| 1 | Run | Cancelled | 25.0% Complete (25.0 of 100.0 miles) |")
	assert.Contains(t, out, `| 2 | Read \| Write | In Progress | 0.0% Complete (0.0 of 3.0) |`)
	assert.Contains(t, out, "## Unlocked Achievements (1)")
	assert.Contains(t, out, "- **Off the Starting Blocks**: Log your very first progress entry for any goal.")
	assert.Contains(t, out, "## Locked Achievements (7)")
}

func TestReportHTML(t *testing.T) {
	s, _ := reportStack(t)
	r := NewReportService(s.goals, s.achievements, nil)

	html, err := r.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), "<td>In Progress</td>")
	assert.Contains(t, string(html), "<strong>Off the Starting Blocks</strong>")
}

func TestReportExport(t *testing.T) {
	s, _ := reportStack(t)

	_, err := NewReportService(s.goals, s.achievements, nil).Export(context.Background())
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	store := &memoryStorage{}
	r := NewReportService(s.goals, s.achievements, store)
	r.now = func() time.Time { return testNow }

	export, err := r.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reports/goals-20261014-120000.md", export.Key)
	assert.Equal(t, "https://files.example.com/reports/goals-20261014-120000.md", export.URL)
	assert.True(t, strings.HasPrefix(store.contentType, "text/markdown"))
	assert.True(t, bytes.HasPrefix(store.objects[export.Key], []byte("# Goal Summary Report")))

	store.saveErr = errors.New("bucket gone")
	_, err = r.Export(context.Background())
	assert.ErrorIs(t, err, store.saveErr)
}
