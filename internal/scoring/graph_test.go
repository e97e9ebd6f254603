package scoring

import (
	"reflect"
	"strings"
	"testing"
)

// tasksWithDeps builds a task list whose dependency entries follow the given
// (id, deps) order, so traversal order in tests is predictable.
func tasksWithDeps(entries [][2]interface{}) []Task {
	tasks := make([]Task, 0, len(entries))
	for _, e := range entries {
		id := int64(e[0].(int))
		var deps []int64
		for _, d := range e[1].([]int) {
			deps = append(deps, int64(d))
		}
		tasks = append(tasks, Task{ID: &id, Title: "t", Dependencies: deps})
	}
	return tasks
}

func TestDetectCyclesTwoNodeLoop(t *testing.T) {
	dm := BuildDependencyMap(tasksWithDeps([][2]interface{}{
		{1, []int{2}},
		{2, []int{1}},
	}))

	cycles := DetectCycles(dm)
	if len(cycles) == 0 {
		t.Fatal("expected at least one cycle")
	}
	if !reflect.DeepEqual(cycles[0], []int64{1, 2}) {
		t.Errorf("expected cycle [1 2], got %v", cycles[0])
	}
}

func TestDetectCyclesChainIsClean(t *testing.T) {
	dm := BuildDependencyMap(tasksWithDeps([][2]interface{}{
		{1, []int{2}},
		{2, []int{3}},
	}))

	if cycles := DetectCycles(dm); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestDetectCyclesSelfLoop(t *testing.T) {
	dm := BuildDependencyMap(tasksWithDeps([][2]interface{}{
		{1, []int{1}},
	}))

	cycles := DetectCycles(dm)
	if len(cycles) != 1 || !reflect.DeepEqual(cycles[0], []int64{1}) {
		t.Errorf("expected single cycle [1], got %v", cycles)
	}
}

func TestDetectCyclesStartsAtFirstRevisit(t *testing.T) {
	// 1 leads into the 2→3→2 loop; the reported cycle starts at 2, the
	// first occurrence of the revisited node on the path.
	dm := BuildDependencyMap(tasksWithDeps([][2]interface{}{
		{1, []int{2}},
		{2, []int{3}},
		{3, []int{2}},
	}))

	cycles := DetectCycles(dm)
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle, got %v", cycles)
	}
	if !reflect.DeepEqual(cycles[0], []int64{2, 3}) {
		t.Errorf("expected cycle [2 3], got %v", cycles[0])
	}
}

func TestDetectCyclesVisitedBranchPrunes(t *testing.T) {
	// Diamond with one back edge: 1→2→4→1 closes a cycle; 1→3→4 then sees 4
	// as fully visited and prunes without reporting a second cycle.
	dm := BuildDependencyMap(tasksWithDeps([][2]interface{}{
		{1, []int{2, 3}},
		{2, []int{4}},
		{3, []int{4}},
		{4, []int{1}},
	}))

	cycles := DetectCycles(dm)
	if len(cycles) != 1 {
		t.Fatalf("expected exactly one reported cycle, got %v", cycles)
	}
	if !reflect.DeepEqual(cycles[0], []int64{1, 2, 4}) {
		t.Errorf("expected cycle [1 2 4], got %v", cycles[0])
	}
}

func TestDetectCyclesUnknownTargetsAreLeaves(t *testing.T) {
	// Dependency ids need not reference tasks in the set.
	dm := BuildDependencyMap(tasksWithDeps([][2]interface{}{
		{1, []int{99, 100}},
	}))

	if cycles := DetectCycles(dm); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestBuildDependencyMapSkipsIdlessAndEmpty(t *testing.T) {
	tasks := []Task{
		{Title: "no id", Dependencies: []int64{1}},
		{ID: int64Ptr(1), Title: "no deps"},
		{ID: int64Ptr(2), Title: "mapped", Dependencies: []int64{1}},
	}
	dm := BuildDependencyMap(tasks)

	if dm.Len() != 1 {
		t.Fatalf("expected one entry, got %d", dm.Len())
	}
	if dm.HasDependencies(1) {
		t.Error("task 1 has no dependencies")
	}
	if !dm.HasDependencies(2) {
		t.Error("task 2 should be mapped")
	}
	// The id-less task cannot contribute to blocked counts.
	if got := dm.BlockedCount(1); got != 1 {
		t.Errorf("expected blocked count 1, got %d", got)
	}
}

func TestCycleErrorEnumeratesCycles(t *testing.T) {
	err := &CycleError{Cycles: [][]int64{{1, 2}, {5, 6, 7}}}
	msg := err.Error()

	for _, want := range []string{"circular dependencies detected", "[1 -> 2]", "[5 -> 6 -> 7]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
