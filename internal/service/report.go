package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/templui/goaltracker/internal/markdown"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/storage"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrStorageNotConfigured = errors.New("report storage not configured (missing S3_BUCKET)")

// Export describes an uploaded report.
type Export struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ReportService renders the summary of all goals and achievements.
type ReportService struct {
	goals        *GoalService
	achievements *AchievementService
	storage      storage.Storage
	parser       *markdown.Parser
	now          func() time.Time
}

func NewReportService(goals *GoalService, achievements *AchievementService, store storage.Storage) *ReportService {
	return &ReportService{
		goals:        goals,
		achievements: achievements,
		storage:      store,
		parser:       markdown.NewParser(),
		now:          time.Now,
	}
}

// Markdown renders the report as GitHub-flavored Markdown.
func (s *ReportService) Markdown() ([]byte, error) {
	goals, err := s.goals.Goals()
	if err != nil {
		return nil, err
	}

	unlocked, locked, err := s.achievements.Status()
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "# Goal Summary Report\n\nGenerated %s\n\n", s.now().Format("2006-01-02 15:04"))

	b.WriteString("## Goals\n\n")
	if len(goals) == 0 {
		b.WriteString("No goals yet.\n\n")
	} else {
		b.WriteString("| Goal ID | Title | Status | Progress |\n|---|---|---|---|\n")
		for _, g := range goals {
			base := g.Goal.Base()
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
				base.ID, cell(base.Title), statusLabel(base.Status), cell(g.Progress.Text))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Unlocked Achievements (%d)\n\n", len(unlocked))
	writeTemplates(&b, unlocked)
	fmt.Fprintf(&b, "## Locked Achievements (%d)\n\n", len(locked))
	writeTemplates(&b, locked)

	return b.Bytes(), nil
}

// HTML renders the Markdown report as an HTML fragment.
func (s *ReportService) HTML() ([]byte, error) {
	md, err := s.Markdown()
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(md)
}

// Export uploads the Markdown report and returns its key and a download link.
func (s *ReportService) Export(ctx context.Context) (*Export, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}

	md, err := s.Markdown()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/goals-%s.md", s.now().UTC().Format("20060102-150405"))
	err = s.storage.Save(ctx, key, "text/markdown; charset=utf-8", bytes.NewReader(md))
	if err != nil {
		return nil, fmt.Errorf("failed to export report: %w", err)
	}

	url, err := s.storage.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to link report: %w", err)
	}

	slog.Info("report exported", "key", key)
	return &Export{Key: key, URL: url}, nil
}

func statusLabel(status model.GoalStatus) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(status), "_", " "))
}

func writeTemplates(b *bytes.Buffer, templates []*model.AchievementTemplate) {
	if len(templates) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for _, t := range templates {
		fmt.Fprintf(b, "- **%s**: %s\n", t.Name, t.Description)
	}
	b.WriteString("\n")
}

// cell escapes pipes so values cannot break the table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
