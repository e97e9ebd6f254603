package scoring

import (
	"math"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name string
		days int
		want float64
	}{
		{"overdue one day", -1, 100},
		{"overdue one month", -30, 100},
		{"severely overdue", -400, 100},
		{"due today", 0, 95},
		{"due tomorrow", 1, 86},
		{"one week", 7, 62},
		{"eight days", 8, 58},
		{"two weeks", 14, 46},
		{"fifteen days", 15, 39},
		{"one month", 30, 24},
		{"just past a month", 31, 39.5},
		{"far future floors at ten", 365, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UrgencyScore(tt.days); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("UrgencyScore(%d) = %f, want %f", tt.days, got, tt.want)
			}
		})
	}
}

func TestImportanceScoreLinearMap(t *testing.T) {
	for importance := 1; importance <= 10; importance++ {
		want := float64(importance) * 10
		if got := ImportanceScore(importance); got != want {
			t.Errorf("ImportanceScore(%d) = %f, want %f", importance, got, want)
		}
	}
}

func TestEffortScore(t *testing.T) {
	t.Run("sub-hour branch", func(t *testing.T) {
		if got := EffortScore(0.5); math.Abs(got-95) > 1e-9 {
			t.Errorf("expected 95 at half an hour, got %f", got)
		}
	})

	t.Run("one hour uses log branch", func(t *testing.T) {
		want := 100 - math.Log10(2)*35
		if got := EffortScore(1); math.Abs(got-want) > 1e-9 {
			t.Errorf("expected %f at one hour, got %f", want, got)
		}
	})

	t.Run("large estimates floor at ten", func(t *testing.T) {
		if got := EffortScore(100000); got != 10 {
			t.Errorf("expected floor of 10, got %f", got)
		}
	})

	t.Run("non-increasing in hours", func(t *testing.T) {
		pairs := [][2]float64{{0.1, 0.9}, {0.9, 1}, {1, 2}, {2, 8}, {8, 40}, {40, 500}}
		for _, p := range pairs {
			lo, hi := EffortScore(p[0]), EffortScore(p[1])
			if hi > lo {
				t.Errorf("EffortScore(%f)=%f exceeds EffortScore(%f)=%f", p[1], hi, p[0], lo)
			}
		}
	})
}

func TestDependencyScore(t *testing.T) {
	tasks := []Task{
		{ID: int64Ptr(1), Title: "foundation"},
		{ID: int64Ptr(2), Title: "mid", Dependencies: []int64{1}},
		{ID: int64Ptr(3), Title: "mid", Dependencies: []int64{1}},
		{ID: int64Ptr(4), Title: "leaf", Dependencies: []int64{1, 2}},
	}
	dm := BuildDependencyMap(tasks)

	t.Run("blocks others, unblocked itself", func(t *testing.T) {
		// base 50 + 3 dependents * 10
		if got := DependencyScore(int64Ptr(1), dm); got != 80 {
			t.Errorf("expected 80, got %f", got)
		}
	})

	t.Run("blocked and blocking", func(t *testing.T) {
		// base 50 + 1 dependent * 10 - 20 for own deps
		if got := DependencyScore(int64Ptr(2), dm); got != 40 {
			t.Errorf("expected 40, got %f", got)
		}
	})

	t.Run("blocked leaf", func(t *testing.T) {
		if got := DependencyScore(int64Ptr(4), dm); got != 30 {
			t.Errorf("expected 30, got %f", got)
		}
	})

	t.Run("nil id lands on base", func(t *testing.T) {
		if got := DependencyScore(nil, dm); got != 50 {
			t.Errorf("expected 50, got %f", got)
		}
	})
}

func TestDependencyScoreBlockedCountCap(t *testing.T) {
	tasks := []Task{{ID: int64Ptr(100), Title: "keystone"}}
	for i := int64(1); i <= 8; i++ {
		tasks = append(tasks, Task{ID: int64Ptr(i), Title: "dependent", Dependencies: []int64{100}})
	}
	dm := BuildDependencyMap(tasks)

	// 8 dependents would add 80; the bonus caps at +50.
	if got := DependencyScore(int64Ptr(100), dm); got != 100 {
		t.Errorf("expected cap at 100, got %f", got)
	}
}

func TestDependencyScoreDuplicateDepsCountOnce(t *testing.T) {
	tasks := []Task{
		{ID: int64Ptr(1), Title: "target"},
		{ID: int64Ptr(2), Title: "noisy", Dependencies: []int64{1, 1, 1}},
	}
	dm := BuildDependencyMap(tasks)

	if got := dm.BlockedCount(1); got != 1 {
		t.Errorf("expected a single distinct dependent, got %d", got)
	}
	if got := DependencyScore(int64Ptr(1), dm); got != 60 {
		t.Errorf("expected 60, got %f", got)
	}
}
