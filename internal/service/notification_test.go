package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltracker/internal/model"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email_1"}, f.err
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func sampleUnlock() model.Unlock {
	return model.Unlock{
		Goal:     &model.Goal{ID: 4, Title: "Run"},
		Template: &model.AchievementTemplate{ID: 2, Name: "One Down!", Description: "Complete your first goal."},
		Log:      &model.AchievementLog{ID: 9, GoalID: 4, AchievementID: 2, EarnedAt: testNow},
	}
}

func TestNotificationSendsEmail(t *testing.T) {
	logs := captureLogs(t)
	sender := &fakeSender{}
	s := &NotificationService{emails: sender, from: "bot@example.com", to: "me@example.com", appName: "Goal Tracker"}

	s.AchievementUnlocked(sampleUnlock())

	assert.Contains(t, logs.String(), "achievement unlocked")
	assert.Contains(t, logs.String(), "goal_id=4")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"me@example.com"}, sender.sent[0].To)
	assert.Equal(t, "Achievement unlocked: One Down!", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Text, `You unlocked "One Down!" on your goal "Run".`)
	assert.Contains(t, sender.sent[0].Text, "The Goal Tracker Team")
}

func TestNotificationSendFailureIsLogged(t *testing.T) {
	logs := captureLogs(t)
	sender := &fakeSender{err: errors.New("rate limited")}
	s := &NotificationService{emails: sender, to: "me@example.com"}

	s.AchievementUnlocked(sampleUnlock())
	assert.Contains(t, logs.String(), "failed to send achievement email")
}

func TestNotificationWithoutEmail(t *testing.T) {
	logs := captureLogs(t)

	NewNotificationService("", "", "", "Goal Tracker", false).AchievementUnlocked(sampleUnlock())
	assert.Contains(t, logs.String(), "achievement unlocked")
	assert.NotContains(t, logs.String(), "email sent")

	logs.Reset()
	NewNotificationService("re_key", "bot@example.com", "me@example.com", "Goal Tracker", true).AchievementUnlocked(sampleUnlock())
	assert.Contains(t, logs.String(), "email sent (dev mode)")
}
