package cmd

import (
	"io"

	"github.com/templui/goaltracker/internal/app"
	"github.com/templui/goaltracker/internal/config"
	"github.com/templui/goaltracker/internal/logger"
)

// withApp loads configuration, builds the application and closes it after fn
// returns. Logs go to stderr so command output stays machine readable.
func withApp(stderr io.Writer, fn func(a *app.App) error) error {
	cfg := config.Load()
	logger.Init(logger.Options{
		IsDev:       cfg.IsDevelopment(),
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.AppEnv,
		Output:      stderr,
	})
	defer logger.Flush()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(a)
}
