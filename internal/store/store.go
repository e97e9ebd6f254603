package store

import (
	"context"
	"errors"
	"time"

	"github.com/tasklens/triage/internal/scoring"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// Task is a persisted raw task record. Computed scores are never stored;
// analysis always runs on a fresh snapshot.
type Task struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	DueDate        scoring.Date `json:"due_date"`
	EstimatedHours float64      `json:"estimated_hours"`
	Importance     int          `json:"importance"`
	Dependencies   []int64      `json:"dependencies"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Scoring converts the stored record into the engine's input shape.
func (t *Task) Scoring() scoring.Task {
	id := t.ID
	return scoring.Task{
		ID:             &id,
		Title:          t.Title,
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		Importance:     t.Importance,
		Dependencies:   t.Dependencies,
	}
}

type TaskFilter struct {
	DueBefore     *time.Time
	MinImportance int
	Limit         int
	Offset        int
}

type TaskStats struct {
	TotalTasks        int     `json:"total_tasks"`
	Overdue           int     `json:"overdue"`
	DueWithinWeek     int     `json:"due_within_week"`
	AvgEstimatedHours float64 `json:"avg_estimated_hours"`
}

type Store interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*TaskStats, error)
	Close() error
}
