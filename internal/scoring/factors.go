package scoring

import "math"

// --- Individual factor calculators ---
//
// All four are pure and deterministic given their inputs. Scores lie in
// [0, 100]; urgency carries its own caps.

// UrgencyScore maps days-until-due to urgency. A strictly non-increasing
// step function of the day count, except the overdue branch; due-today is an
// explicit spike to 95 rather than an extrapolation of the 1–7 day branch.
func UrgencyScore(daysUntilDue int) float64 {
	switch {
	case daysUntilDue < 0:
		// Lateness penalty capped at +50, overall cap 100. The nested cap
		// saturates every overdue task at the same score.
		overduePenalty := math.Min(float64(-daysUntilDue)*2, 50)
		return math.Min(100, 100+overduePenalty)
	case daysUntilDue == 0:
		return 95
	case daysUntilDue <= 7:
		return float64(90 - daysUntilDue*4)
	case daysUntilDue <= 14:
		return float64(60 - (daysUntilDue-7)*2)
	case daysUntilDue <= 30:
		return float64(40 - (daysUntilDue - 14))
	default:
		return math.Max(10, 40-float64(daysUntilDue-30)*0.5)
	}
}

// ImportanceScore maps the 1–10 input scale linearly to 10–100.
func ImportanceScore(importance int) float64 {
	return float64(importance) * 10
}

// EffortScore reverse-scales estimated hours: smaller tasks score higher.
// Monotonically non-increasing in estimatedHours.
func EffortScore(estimatedHours float64) float64 {
	if estimatedHours < 1 {
		return 90 + (1-estimatedHours)*10
	}
	score := 100 - math.Log10(estimatedHours+1)*35
	return clamp(score, 10, 100)
}

// DependencyScore measures dependency pressure: base 50, plus 10 per task
// this one unblocks (capped at +50), minus 20 when this task is itself
// blocked. A nil id can neither block nor be blocked and lands on the base.
func DependencyScore(id *int64, dm *DependencyMap) float64 {
	score := 50.0
	if id != nil {
		score += math.Min(float64(dm.BlockedCount(*id))*10, 50)
		if dm.HasDependencies(*id) {
			score -= 20
		}
	}
	return clamp(score, 0, 100)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
