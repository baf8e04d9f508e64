package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/service"
	"github.com/templui/goaltracker/internal/timeutil"
)

type GoalHandler struct {
	goalService *service.GoalService
	loc         *time.Location
}

func NewGoalHandler(goalService *service.GoalService, loc *time.Location) *GoalHandler {
	if loc == nil {
		loc = time.Local
	}
	return &GoalHandler{
		goalService: goalService,
		loc:         loc,
	}
}

type createGoalRequest struct {
	Type        model.GoalType   `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	TargetValue *decimal.Decimal `json:"target_value"`
	Unit        string           `json:"unit"`
	Frequency   model.Frequency  `json:"frequency"`
}

type logEntryRequest struct {
	Value    *decimal.Decimal `json:"value"`
	Note     string           `json:"note"`
	LoggedAt string           `json:"logged_at"`
}

// parseTime accepts YYYY-MM-DD in the handler's location or RFC 3339. Empty
// input yields the zero time.
func (h *GoalHandler) parseTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := timeutil.ParseDate(value, h.loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD or RFC 3339", field)
	}
	return t, nil
}

func goalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid goal id")
		return 0, false
	}
	return id, true
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.goalService.Goals()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views := make([]goalView, len(results))
	for i, res := range results {
		views[i] = newGoalView(res, false)
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": views})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, err := h.parseTime("start_date", req.StartDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	end, err := h.parseTime("end_date", req.EndDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	var result *service.GoalResult
	switch req.Type {
	case model.GoalTypeQuantitative:
		target := decimal.Zero
		if req.TargetValue != nil {
			target = *req.TargetValue
		}
		result, err = h.goalService.CreateQuantitative(service.QuantitativeInput{
			Title:       req.Title,
			Description: req.Description,
			StartDate:   start,
			EndDate:     end,
			TargetValue: target,
			Unit:        req.Unit,
		})
	case model.GoalTypeTimeBased:
		result, err = h.goalService.CreateTimeBased(service.TimeBasedInput{
			Title:       req.Title,
			Description: req.Description,
			StartDate:   start,
			EndDate:     end,
			Frequency:   req.Frequency,
		})
	default:
		WriteError(w, http.StatusBadRequest, "VALIDATION", `type must be "quantitative" or "time_based"`)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newGoalView(result, true))
}

func (h *GoalHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	result, err := h.goalService.Goal(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGoalView(result, true))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	err := h.goalService.Delete(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogEntry appends a progress entry. A missing value counts as one
// occurrence, which is what time-based goals record.
func (h *GoalHandler) LogEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	var req logEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	at, err := h.parseTime("logged_at", req.LoggedAt)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	value := decimal.NewFromInt(1)
	if req.Value != nil {
		value = *req.Value
	}

	result, err := h.goalService.LogProgress(id, value, req.Note, at)
	if err != nil {
		if result != nil {
			slog.Error("progress logged but achievement check failed", "error", err, "goal_id", id)
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGoalView(result, true))
}

func (h *GoalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	result, err := h.goalService.Cancel(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGoalView(result, false))
}

func (h *GoalHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	result, err := h.goalService.Recompute(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGoalView(result, false))
}

func (h *GoalHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	unlocks, err := h.goalService.Achievements(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views := newUnlockViews(unlocks)
	if views == nil {
		views = []unlockView{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"achievements": views})
}
