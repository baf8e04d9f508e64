package service

import (
	"fmt"

	"github.com/templui/goaltracker/internal/model"
)

func achievementUnlockedEmailTemplate(unlock model.Unlock, appName string) (string, string) {
	subject := fmt.Sprintf("Achievement unlocked: %s", unlock.Template.Name)
	body := fmt.Sprintf(`Congratulations!

You unlocked "%s" on your goal "%s".

%s

Earned at %s.

Keep it up,
The %s Team`,
		unlock.Template.Name,
		unlock.Goal.Title,
		unlock.Template.Description,
		unlock.Log.EarnedAt.Format("Jan 2, 2006 15:04"),
		appName,
	)

	return subject, body
}
