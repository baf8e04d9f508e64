package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/goaltracker/internal/ctxkeys"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/service"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
}

func NewAchievementHandler(achievementService *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

type createTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Repeatable  bool   `json:"repeatable"`
}

// Status lists every template split by whether any goal has earned it.
func (h *AchievementHandler) Status(w http.ResponseWriter, r *http.Request) {
	unlocked, locked, err := h.achievementService.Status()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked": newTemplateViews(unlocked),
		"locked":   newTemplateViews(locked),
	})
}

func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t := &model.AchievementTemplate{
		Name:        req.Name,
		Description: req.Description,
		Condition:   req.Condition,
		Repeatable:  req.Repeatable,
	}
	err := h.achievementService.RegisterTemplate(t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("achievement template registered", "name", t.Name, "admin", ctxkeys.Admin(r.Context()))
	writeJSON(w, http.StatusCreated, newTemplateViews([]*model.AchievementTemplate{t})[0])
}

func (h *AchievementHandler) Seed(w http.ResponseWriter, r *http.Request) {
	added, err := h.achievementService.SeedDefaultTemplates()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}
