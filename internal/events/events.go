package events

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisCompletedEvent struct {
	AnalysisID string  `json:"analysis_id"`
	Strategy   string  `json:"strategy"`
	TaskCount  int     `json:"task_count"`
	TopScore   float64 `json:"top_score,omitempty"`
}

type SuggestionCompletedEvent struct {
	AnalysisID string `json:"analysis_id"`
	Strategy   string `json:"strategy"`
	TaskCount  int    `json:"task_count"`
	Suggested  int    `json:"suggested"`
}

type TaskEvent struct {
	TaskID int64  `json:"task_id"`
	Title  string `json:"title"`
}

type StatsEvent struct {
	TotalTasks    int       `json:"total_tasks"`
	Overdue       int       `json:"overdue"`
	DueWithinWeek int       `json:"due_within_week"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewAnalysisID tags one analysis call so its events correlate in consumers.
func NewAnalysisID() string {
	return uuid.NewString()
}
