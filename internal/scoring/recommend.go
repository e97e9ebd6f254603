package scoring

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSuggestionCount is used when the caller asks for zero or fewer
// recommendations.
const DefaultSuggestionCount = 3

// SuggestTop runs a full analysis and returns the top count tasks, each with
// a generated natural-language justification. Returns min(count, len(tasks))
// entries; the same "today" feeds both scoring and reason generation.
func (e *Engine) SuggestTop(tasks []Task, count int) ([]Recommendation, error) {
	if count <= 0 {
		count = DefaultSuggestionCount
	}

	now := e.now()
	analyzed, err := e.analyzeAt(now, tasks)
	if err != nil {
		return nil, err
	}
	if count > len(analyzed) {
		count = len(analyzed)
	}

	recs := make([]Recommendation, 0, count)
	for _, at := range analyzed[:count] {
		recs = append(recs, Recommendation{
			ID:             at.ID,
			Title:          at.Title,
			DueDate:        at.DueDate,
			EstimatedHours: at.EstimatedHours,
			Importance:     at.Importance,
			PriorityScore:  at.PriorityScore,
			PriorityLevel:  at.PriorityLevel,
			Reason:         e.reason(now, at),
		})
	}
	return recs, nil
}

// reason evaluates the triggers in fixed order and comma-joins every one
// that fires. The due-date triggers are mutually exclusive, as is the
// trailing strategy bonus; the fallback applies only when nothing fired.
func (e *Engine) reason(now time.Time, at AnalyzedTask) string {
	var reasons []string

	daysUntil := at.DueDate.DaysUntil(now)
	switch {
	case daysUntil < 0:
		reasons = append(reasons, fmt.Sprintf("overdue by %d day(s)", -daysUntil))
	case daysUntil == 0:
		reasons = append(reasons, "due today")
	case daysUntil <= 3:
		reasons = append(reasons, fmt.Sprintf("due in %d day(s)", daysUntil))
	}

	if at.Importance >= 8 {
		reasons = append(reasons, "high importance")
	}
	if at.EstimatedHours <= 2 {
		reasons = append(reasons, "quick win")
	}
	if at.ScoreBreakdown.Dependencies > 70 {
		reasons = append(reasons, "blocks other tasks")
	}

	switch {
	case e.strategy == StrategyFastestWins && at.EstimatedHours <= 1:
		reasons = append(reasons, "fast to complete")
	case e.strategy == StrategyHighImpact && at.Importance >= 8:
		reasons = append(reasons, "maximum impact")
	case e.strategy == StrategyDeadlineDriven && daysUntil <= 2:
		reasons = append(reasons, "urgent deadline")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "balanced priority across all factors")
	}
	return "Recommended because: " + strings.Join(reasons, ", ")
}
