package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/validation"
)

// EmailSender is satisfied by the Resend e-mail client.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// NotificationService logs every unlock and, when configured, e-mails it.
type NotificationService struct {
	emails  EmailSender
	from    string
	to      string
	appName string
	isDev   bool
}

func NewNotificationService(apiKey, from, to, appName string, isDev bool) *NotificationService {
	var emails EmailSender
	if apiKey != "" && to != "" && !isDev {
		err := validation.ValidateEmail(to)
		if err != nil {
			slog.Warn("unlock emails disabled", "error", err, "to", to)
		} else {
			emails = resend.NewClient(apiKey).Emails
		}
	}

	return &NotificationService{
		emails:  emails,
		from:    from,
		to:      to,
		appName: appName,
		isDev:   isDev,
	}
}

func (s *NotificationService) AchievementUnlocked(unlock model.Unlock) {
	slog.Info("achievement unlocked",
		"goal_id", unlock.Goal.ID,
		"goal", unlock.Goal.Title,
		"achievement_id", unlock.Template.ID,
		"achievement", unlock.Template.Name,
	)

	subject, body := achievementUnlockedEmailTemplate(unlock, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "achievement_unlocked", "to", s.to, "subject", subject)
		return
	}

	if s.emails == nil {
		return
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: subject,
		Text:    body,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Warn("failed to send achievement email", "error", err, "achievement_id", unlock.Template.ID)
		return
	}
	slog.Info("email sent", "type", "achievement_unlocked", "to", s.to)
}
