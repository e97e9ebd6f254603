package scoring

import (
	"fmt"
	"math"
)

// Strategy names one of the fixed weight quadruples. The set is closed;
// anything else maps to the default via ParseStrategy.
type Strategy string

const (
	StrategySmartBalance   Strategy = "smart_balance"
	StrategyFastestWins    Strategy = "fastest_wins"
	StrategyHighImpact     Strategy = "high_impact"
	StrategyDeadlineDriven Strategy = "deadline_driven"
)

// DefaultStrategy is the balanced general-purpose ranking.
const DefaultStrategy = StrategySmartBalance

// Strategies returns every recognized strategy.
func Strategies() []Strategy {
	return []Strategy{
		StrategySmartBalance,
		StrategyFastestWins,
		StrategyHighImpact,
		StrategyDeadlineDriven,
	}
}

// ParseStrategy maps a strategy name to its Strategy. Unknown names fall
// back to smart_balance without error; the silent fallback is a documented
// policy, not an accident.
func ParseStrategy(name string) Strategy {
	switch Strategy(name) {
	case StrategySmartBalance, StrategyFastestWins, StrategyHighImpact, StrategyDeadlineDriven:
		return Strategy(name)
	default:
		return DefaultStrategy
	}
}

// KnownStrategy reports whether name is one of the recognized strategies.
func KnownStrategy(name string) bool {
	return Strategy(name) == ParseStrategy(name)
}

// WeightSet defines the relative influence of each scoring factor.
// All weights must sum to 1.0 (±1e-6 tolerance).
type WeightSet struct {
	Urgency      float64 `json:"urgency"`
	Importance   float64 `json:"importance"`
	Effort       float64 `json:"effort"`
	Dependencies float64 `json:"dependencies"`
}

// Weights returns the weight quadruple for the strategy. Values are fixed
// at compile time and immutable for the lifetime of an analysis.
func (s Strategy) Weights() WeightSet {
	switch s {
	case StrategyFastestWins:
		return WeightSet{Urgency: 0.20, Importance: 0.20, Effort: 0.50, Dependencies: 0.10}
	case StrategyHighImpact:
		return WeightSet{Urgency: 0.15, Importance: 0.60, Effort: 0.10, Dependencies: 0.15}
	case StrategyDeadlineDriven:
		return WeightSet{Urgency: 0.60, Importance: 0.20, Effort: 0.05, Dependencies: 0.15}
	default:
		return WeightSet{Urgency: 0.35, Importance: 0.30, Effort: 0.15, Dependencies: 0.20}
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependencies
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Urgency, w.Importance, w.Effort, w.Dependencies} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}
