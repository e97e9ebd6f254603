package scoring

import (
	"log/slog"
	"math"
	"sort"
	"time"
)

// Level is the coarse label derived from fixed thresholds on the blended score.
type Level string

const (
	LevelCritical Level = "Critical"
	LevelHigh     Level = "High"
	LevelMedium   Level = "Medium"
	LevelLow      Level = "Low"
)

// LevelFor maps a blended score to its label. Thresholds are checked in
// descending order; first match wins.
func LevelFor(score float64) Level {
	switch {
	case score >= 80:
		return LevelCritical
	case score >= 65:
		return LevelHigh
	case score >= 45:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Engine ranks a task snapshot under a single strategy. It is stateless
// across calls and safe for unlimited concurrent use; "today" is sampled
// once per call so a date rollover cannot split one analysis across days.
type Engine struct {
	strategy Strategy
	weights  WeightSet
	logger   *slog.Logger
	now      func() time.Time
}

// NewEngine creates an Engine for the given strategy. The weight set is
// fixed for the engine's lifetime.
func NewEngine(strategy Strategy, logger *slog.Logger) *Engine {
	return &Engine{
		strategy: strategy,
		weights:  strategy.Weights(),
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the wall-clock reader. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) Strategy() Strategy { return e.strategy }

func (e *Engine) Weights() WeightSet { return e.weights }

// Analyze scores and ranks the full task set. It either returns the complete
// ranked list or fails with a *CycleError; single tasks are never silently
// skipped. The caller's slice is left untouched.
func (e *Engine) Analyze(tasks []Task) ([]AnalyzedTask, error) {
	return e.analyzeAt(e.now(), tasks)
}

func (e *Engine) analyzeAt(now time.Time, tasks []Task) ([]AnalyzedTask, error) {
	dm := BuildDependencyMap(tasks)
	if cycles := DetectCycles(dm); len(cycles) > 0 {
		e.logger.Warn("analysis aborted on dependency cycles",
			"strategy", e.strategy,
			"cycles", len(cycles),
		)
		return nil, &CycleError{Cycles: cycles}
	}

	analyzed := make([]AnalyzedTask, 0, len(tasks))
	for _, t := range tasks {
		urgency := UrgencyScore(t.DueDate.DaysUntil(now))
		importance := ImportanceScore(t.Importance)
		effort := EffortScore(t.EstimatedHours)
		dependency := DependencyScore(t.ID, dm)

		// Blend raw factor values; rounding happens once on the result and
		// once per factor in the breakdown.
		score := urgency*e.weights.Urgency +
			importance*e.weights.Importance +
			effort*e.weights.Effort +
			dependency*e.weights.Dependencies

		out := t
		if out.Dependencies == nil {
			out.Dependencies = []int64{}
		}

		rounded := round2(score)
		analyzed = append(analyzed, AnalyzedTask{
			Task:          out,
			PriorityScore: rounded,
			PriorityLevel: LevelFor(rounded),
			ScoreBreakdown: Breakdown{
				Urgency:      round2(urgency),
				Importance:   round2(importance),
				Effort:       round2(effort),
				Dependencies: round2(dependency),
				Weights:      e.weights,
			},
		})
	}

	// Stable: equal scores keep their original relative order.
	sort.SliceStable(analyzed, func(i, j int) bool {
		return analyzed[i].PriorityScore > analyzed[j].PriorityScore
	})
	return analyzed, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
