package routes

import (
	"net/http"
	"time"

	"github.com/templui/goaltracker/internal/app"
	"github.com/templui/goaltracker/internal/handler"
	"github.com/templui/goaltracker/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	goal := handler.NewGoalHandler(app.GoalService, app.Cfg.Timezone)
	achievement := handler.NewAchievementHandler(app.AchievementService)
	report := handler.NewReportHandler(app.ReportService, app.Cfg.AppName)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /report", report.HTML)

	// Goals
	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("GET /api/goals/{id}", goal.Show)
	mux.HandleFunc("DELETE /api/goals/{id}", goal.Delete)
	mux.HandleFunc("POST /api/goals/{id}/entries", goal.LogEntry)
	mux.HandleFunc("POST /api/goals/{id}/cancel", goal.Cancel)
	mux.HandleFunc("POST /api/goals/{id}/recompute", goal.Recompute)
	mux.HandleFunc("GET /api/goals/{id}/achievements", goal.Achievements)

	// Achievements
	mux.HandleFunc("GET /api/achievements", achievement.Status)

	// ============================================================================
	// ADMIN ROUTES (/api/admin/*)
	// ============================================================================

	rateLimiter := middleware.RateLimit(30, time.Minute)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimiter(middleware.RequireAdmin(app.AuthService)(h))
	}

	mux.HandleFunc("POST /api/admin/achievements", admin(achievement.Create))
	mux.HandleFunc("POST /api/admin/achievements/seed", admin(achievement.Seed))
	mux.HandleFunc("POST /api/admin/reports/export", admin(report.Export))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
	)
}
