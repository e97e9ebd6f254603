package scoring

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date with no time component, serialized as "YYYY-MM-DD".
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// DaysUntil returns the whole calendar days from now's date to d.
// Negative when d is in the past.
func (d Date) DaysUntil(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.t.Sub(today) / (24 * time.Hour))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.t = t
	return nil
}

// Task is one caller-supplied task record. The engine never mutates it.
// ID is optional; an id-less task cannot be referenced as a dependency
// target and cannot carry an entry in the dependency map.
type Task struct {
	ID             *int64  `json:"id,omitempty"`
	Title          string  `json:"title"`
	DueDate        Date    `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies"`
}

// Breakdown holds the four rounded factor scores plus the weight set that
// was applied. Fixed shape, not a free-form map.
type Breakdown struct {
	Urgency      float64   `json:"urgency"`
	Importance   float64   `json:"importance"`
	Effort       float64   `json:"effort"`
	Dependencies float64   `json:"dependencies"`
	Weights      WeightSet `json:"weights"`
}

// AnalyzedTask is a Task annotated with its blended score, level label and
// per-factor breakdown.
type AnalyzedTask struct {
	Task
	PriorityScore  float64   `json:"priority_score"`
	PriorityLevel  Level     `json:"priority_level"`
	ScoreBreakdown Breakdown `json:"score_breakdown"`
}

// Recommendation is an AnalyzedTask subset with a generated justification.
// Created transiently per suggestion call, never stored.
type Recommendation struct {
	ID             *int64  `json:"id,omitempty"`
	Title          string  `json:"title"`
	DueDate        Date    `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	PriorityScore  float64 `json:"priority_score"`
	PriorityLevel  Level   `json:"priority_level"`
	Reason         string  `json:"reason"`
}
