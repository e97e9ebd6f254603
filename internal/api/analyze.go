package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tasklens/triage/internal/config"
	"github.com/tasklens/triage/internal/events"
	"github.com/tasklens/triage/internal/scoring"
	"github.com/tasklens/triage/internal/store"
)

// AnalyzeHandler serves the stateless analysis endpoints. When a request
// carries no tasks of its own, the stored task set is analyzed instead.
type AnalyzeHandler struct {
	store  store.Store
	events events.Client
	cfg    config.AnalysisConfig
	logger *slog.Logger
}

func NewAnalyzeHandler(s store.Store, ev events.Client, cfg config.AnalysisConfig, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{store: s, events: ev, cfg: cfg, logger: logger}
}

type AnalyzeRequest struct {
	Tasks    []scoring.Task `json:"tasks"`
	Strategy string         `json:"strategy"`
}

type SuggestRequest struct {
	Tasks    []scoring.Task `json:"tasks"`
	Strategy string         `json:"strategy"`
	Count    int            `json:"count"`
}

type AnalyzeResponse struct {
	Success    bool                   `json:"success"`
	Strategy   string                 `json:"strategy"`
	TotalTasks int                    `json:"total_tasks"`
	Tasks      []scoring.AnalyzedTask `json:"tasks"`
}

type SuggestResponse struct {
	Success        bool                     `json:"success"`
	Strategy       string                   `json:"strategy"`
	Date           string                   `json:"date"`
	Message        string                   `json:"message"`
	SuggestedTasks []scoring.Recommendation `json:"suggested_tasks"`
}

type errorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: err.Error(),
		})
		return
	}

	strategy, tasks, ok := h.prepare(w, r, req.Strategy, req.Tasks)
	if !ok {
		return
	}

	engine := scoring.NewEngine(strategy, h.logger)
	analyzed, err := engine.Analyze(tasks)
	if err != nil {
		h.analysisError(w, strategy, err)
		analysesTotal.WithLabelValues(string(strategy), "error").Inc()
		return
	}

	analysesTotal.WithLabelValues(string(strategy), "ok").Inc()
	analysisDuration.Observe(time.Since(start).Seconds())
	tasksAnalyzed.Observe(float64(len(analyzed)))

	h.publish(events.SubjectAnalysisCompleted, events.AnalysisCompletedEvent{
		AnalysisID: events.NewAnalysisID(),
		Strategy:   string(strategy),
		TaskCount:  len(analyzed),
		TopScore:   topScore(analyzed),
	})

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:    true,
		Strategy:   string(strategy),
		TotalTasks: len(analyzed),
		Tasks:      analyzed,
	})
}

func (h *AnalyzeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: err.Error(),
		})
		return
	}

	strategy, tasks, ok := h.prepare(w, r, req.Strategy, req.Tasks)
	if !ok {
		return
	}

	count := req.Count
	if count <= 0 {
		count = h.cfg.SuggestionCount
	}

	engine := scoring.NewEngine(strategy, h.logger)
	recs, err := engine.SuggestTop(tasks, count)
	if err != nil {
		h.analysisError(w, strategy, err)
		suggestionsTotal.WithLabelValues(string(strategy), "error").Inc()
		return
	}

	suggestionsTotal.WithLabelValues(string(strategy), "ok").Inc()

	h.publish(events.SubjectSuggestionCompleted, events.SuggestionCompletedEvent{
		AnalysisID: events.NewAnalysisID(),
		Strategy:   string(strategy),
		TaskCount:  len(tasks),
		Suggested:  len(recs),
	})

	writeJSON(w, http.StatusOK, SuggestResponse{
		Success:        true,
		Strategy:       string(strategy),
		Date:           time.Now().Format("2006-01-02"),
		Message:        fmt.Sprintf("Here are your top %d recommended tasks for today", len(recs)),
		SuggestedTasks: recs,
	})
}

// prepare resolves the strategy, falls back to the stored task set when the
// request carries none, and validates the inputs. On failure it has already
// written the error response.
func (h *AnalyzeHandler) prepare(w http.ResponseWriter, r *http.Request, strategyName string, tasks []scoring.Task) (scoring.Strategy, []scoring.Task, bool) {
	if strategyName != "" && !scoring.KnownStrategy(strategyName) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: map[string]string{"strategy": fmt.Sprintf("%q is not a valid choice", strategyName)},
		})
		return "", nil, false
	}
	if strategyName == "" {
		strategyName = h.cfg.DefaultStrategy
	}
	strategy := scoring.ParseStrategy(strategyName)

	if len(tasks) == 0 {
		stored, err := h.store.ListTasks(r.Context(), store.TaskFilter{})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "Internal server error",
				Details: err.Error(),
			})
			return "", nil, false
		}
		tasks = make([]scoring.Task, 0, len(stored))
		for _, t := range stored {
			tasks = append(tasks, t.Scoring())
		}
	}

	if details := validateTasks(tasks, h.cfg.MaxTasksPerRequest); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: details,
		})
		return "", nil, false
	}
	return strategy, tasks, true
}

// validateTasks enforces the input contract: bounded set size, required
// title and due date, sane hours and importance, and unique ids.
func validateTasks(tasks []scoring.Task, maxTasks int) []string {
	var details []string
	if maxTasks > 0 && len(tasks) > maxTasks {
		details = append(details, fmt.Sprintf("too many tasks: %d exceeds limit of %d", len(tasks), maxTasks))
		return details
	}

	seen := make(map[int64]bool, len(tasks))
	for i, t := range tasks {
		if t.Title == "" {
			details = append(details, fmt.Sprintf("tasks[%d]: title is required", i))
		}
		if len(t.Title) > 200 {
			details = append(details, fmt.Sprintf("tasks[%d]: title exceeds 200 characters", i))
		}
		if t.DueDate.Time().IsZero() {
			details = append(details, fmt.Sprintf("tasks[%d]: due_date is required", i))
		}
		if t.EstimatedHours <= 0 || t.EstimatedHours > 1000 {
			details = append(details, fmt.Sprintf("tasks[%d]: estimated_hours must be in (0, 1000]", i))
		}
		if t.Importance < 1 || t.Importance > 10 {
			details = append(details, fmt.Sprintf("tasks[%d]: importance must be between 1 and 10", i))
		}
		if t.ID != nil {
			if seen[*t.ID] {
				details = append(details, fmt.Sprintf("tasks[%d]: duplicate task id %d", i, *t.ID))
			}
			seen[*t.ID] = true
		}
	}
	return details
}

func (h *AnalyzeHandler) analysisError(w http.ResponseWriter, strategy scoring.Strategy, err error) {
	var cycleErr *scoring.CycleError
	if errors.As(err, &cycleErr) {
		h.logger.Warn("analysis rejected", "strategy", strategy, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Task analysis failed",
			Details: err.Error(),
		})
		return
	}
	h.logger.Error("analysis failed", "strategy", strategy, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Internal server error",
		Details: err.Error(),
	})
}

func (h *AnalyzeHandler) publish(subject string, payload interface{}) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(subject, payload); err != nil {
		h.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func topScore(analyzed []scoring.AnalyzedTask) float64 {
	if len(analyzed) == 0 {
		return 0
	}
	return analyzed[0].PriorityScore
}
