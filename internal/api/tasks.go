package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tasklens/triage/internal/config"
	"github.com/tasklens/triage/internal/events"
	"github.com/tasklens/triage/internal/scoring"
	"github.com/tasklens/triage/internal/store"
)

// TasksHandler serves CRUD on the persisted task set.
type TasksHandler struct {
	store  store.Store
	events events.Client
	cfg    config.AnalysisConfig
}

func NewTasksHandler(s store.Store, ev events.Client, cfg config.AnalysisConfig) *TasksHandler {
	return &TasksHandler{store: s, events: ev, cfg: cfg}
}

type TaskRequest struct {
	Title          string       `json:"title"`
	DueDate        scoring.Date `json:"due_date"`
	EstimatedHours float64      `json:"estimated_hours"`
	Importance     int          `json:"importance"`
	Dependencies   []int64      `json:"dependencies"`
}

func (req *TaskRequest) validate() []string {
	var details []string
	if req.Title == "" {
		details = append(details, "title is required")
	}
	if len(req.Title) > 200 {
		details = append(details, "title exceeds 200 characters")
	}
	if req.DueDate.Time().IsZero() {
		details = append(details, "due_date is required")
	}
	if req.EstimatedHours <= 0 || req.EstimatedHours > 1000 {
		details = append(details, "estimated_hours must be in (0, 1000]")
	}
	if req.Importance < 1 || req.Importance > 10 {
		details = append(details, "importance must be between 1 and 10")
	}
	return details
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input data", Details: err.Error()})
		return
	}
	if details := req.validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input data", Details: details})
		return
	}

	task := &store.Task{
		Title:          req.Title,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		Importance:     req.Importance,
		Dependencies:   req.Dependencies,
	}
	if err := h.store.CreateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}

	h.publishTaskEvent(events.SubjectTaskCreated, task)
	writeJSON(w, http.StatusCreated, task)
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input data", Details: err.Error()})
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*store.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_tasks": len(tasks),
		"tasks":       tasks,
	})
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "task not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input data", Details: err.Error()})
		return
	}
	if details := req.validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input data", Details: details})
		return
	}

	task := &store.Task{
		ID:             id,
		Title:          req.Title,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		Importance:     req.Importance,
		Dependencies:   req.Dependencies,
	}
	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "task not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}

	h.publishTaskEvent(events.SubjectTaskUpdated, task)
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "task not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()})
		return
	}

	if h.events != nil {
		subject := events.SubjectTaskDeleted(strconv.FormatInt(id, 10))
		_ = h.events.Publish(subject, events.TaskEvent{TaskID: id})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TasksHandler) publishTaskEvent(subject func(string) string, task *store.Task) {
	if h.events == nil {
		return
	}
	_ = h.events.Publish(subject(strconv.FormatInt(task.ID, 10)), events.TaskEvent{
		TaskID: task.ID,
		Title:  task.Title,
	})
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid input data",
			Details: "task id must be an integer",
		})
		return 0, false
	}
	return id, true
}

func parseFilter(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter
	q := r.URL.Query()

	if v := q.Get("due_before"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			return filter, fmt.Errorf("due_before: %w", err)
		}
		filter.DueBefore = &t
	}
	if v := q.Get("min_importance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("min_importance: %w", err)
		}
		filter.MinImportance = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("limit: %w", err)
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("offset: %w", err)
		}
		filter.Offset = n
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
