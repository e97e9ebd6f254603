package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tasklens/triage/internal/scoring"
	"github.com/tasklens/triage/internal/store"
)

// ExplainResponse breaks down one stored task's score relative to the rest
// of the stored set under the requested strategy.
type ExplainResponse struct {
	Success        bool              `json:"success"`
	Strategy       string            `json:"strategy"`
	TaskID         int64             `json:"task_id"`
	Title          string            `json:"title"`
	Rank           int               `json:"rank"`
	TotalTasks     int               `json:"total_tasks"`
	PriorityScore  float64           `json:"priority_score"`
	PriorityLevel  scoring.Level     `json:"priority_level"`
	ScoreBreakdown scoring.Breakdown `json:"score_breakdown"`
	Reason         string            `json:"reason,omitempty"`
}

// Explain scores the full stored set and reports where one task landed.
// The whole set has to be analyzed because the dependency factor is
// relative to every other stored task.
func (h *AnalyzeHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: "task id must be an integer",
		})
		return
	}

	if _, err := h.store.GetTask(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "task not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
		return
	}

	strategyName := r.URL.Query().Get("strategy")
	if strategyName != "" && !scoring.KnownStrategy(strategyName) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: map[string]string{"strategy": strategyName + " is not a valid choice"},
		})
		return
	}
	if strategyName == "" {
		strategyName = h.cfg.DefaultStrategy
	}
	strategy := scoring.ParseStrategy(strategyName)

	stored, err := h.store.ListTasks(r.Context(), store.TaskFilter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
		return
	}
	tasks := make([]scoring.Task, 0, len(stored))
	for _, t := range stored {
		tasks = append(tasks, t.Scoring())
	}

	engine := scoring.NewEngine(strategy, h.logger)
	analyzed, err := engine.Analyze(tasks)
	if err != nil {
		h.analysisError(w, strategy, err)
		return
	}

	for rank, at := range analyzed {
		if at.ID != nil && *at.ID == id {
			writeJSON(w, http.StatusOK, ExplainResponse{
				Success:        true,
				Strategy:       string(strategy),
				TaskID:         id,
				Title:          at.Title,
				Rank:           rank + 1,
				TotalTasks:     len(analyzed),
				PriorityScore:  at.PriorityScore,
				PriorityLevel:  at.PriorityLevel,
				ScoreBreakdown: at.ScoreBreakdown,
			})
			return
		}
	}

	// GetTask succeeded moments ago, so the task vanished mid-request.
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "task not found"})
}
