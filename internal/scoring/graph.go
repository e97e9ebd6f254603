package scoring

import (
	"strconv"
	"strings"
)

// DependencyMap is the adjacency view over one task snapshot. Built fresh
// per call, never persisted. Only tasks with a non-nil id and a non-empty
// dependency list get an entry; referenced ids need not exist in the set.
type DependencyMap struct {
	deps     map[int64][]int64
	order    []int64 // key insertion order, keeps traversal deterministic
	blockers map[int64]int
}

// BuildDependencyMap derives the dependency map from the full task set and
// precomputes, per id, how many distinct tasks list it as a dependency.
func BuildDependencyMap(tasks []Task) *DependencyMap {
	dm := &DependencyMap{
		deps:     make(map[int64][]int64),
		blockers: make(map[int64]int),
	}
	for _, t := range tasks {
		if t.ID == nil || len(t.Dependencies) == 0 {
			continue
		}
		if _, ok := dm.deps[*t.ID]; !ok {
			dm.order = append(dm.order, *t.ID)
		}
		dm.deps[*t.ID] = t.Dependencies
	}
	for _, id := range dm.order {
		seen := make(map[int64]bool, len(dm.deps[id]))
		for _, dep := range dm.deps[id] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			dm.blockers[dep]++
		}
	}
	return dm
}

// Dependencies returns the ids the given task depends on.
func (dm *DependencyMap) Dependencies(id int64) []int64 {
	return dm.deps[id]
}

// HasDependencies reports whether the task is itself blocked.
func (dm *DependencyMap) HasDependencies(id int64) bool {
	return len(dm.deps[id]) > 0
}

// BlockedCount returns how many distinct tasks the given id unblocks.
func (dm *DependencyMap) BlockedCount(id int64) int {
	return dm.blockers[id]
}

// Len returns the number of tasks with dependency entries.
func (dm *DependencyMap) Len() int {
	return len(dm.deps)
}

// DetectCycles runs a depth-first traversal from every mapped id and returns
// all detected cycles, each an ordered id sequence starting at the first
// occurrence of the revisited node in the current path. Nodes already fully
// visited prune silently; a branch that closes a cycle is not expanded
// through again. Iterative with an explicit stack, so a long dependency
// chain cannot blow the call stack.
func DetectCycles(dm *DependencyMap) [][]int64 {
	type frame struct {
		node int64
		next int
	}

	visited := make(map[int64]bool, len(dm.deps))
	var cycles [][]int64

	for _, start := range dm.order {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack := []frame{{node: start}}
		path := []int64{start}
		pathIndex := map[int64]int{start: 0}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := dm.deps[f.node]
			if f.next < len(deps) {
				dep := deps[f.next]
				f.next++
				if at, onPath := pathIndex[dep]; onPath {
					cycle := make([]int64, len(path)-at)
					copy(cycle, path[at:])
					cycles = append(cycles, cycle)
					continue
				}
				if visited[dep] {
					continue
				}
				visited[dep] = true
				pathIndex[dep] = len(path)
				path = append(path, dep)
				stack = append(stack, frame{node: dep})
				continue
			}
			delete(pathIndex, f.node)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}
	return cycles
}

// CycleError aborts an analysis before any score is computed. No partial
// results accompany it.
type CycleError struct {
	Cycles [][]int64
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		ids := make([]string, len(cycle))
		for j, id := range cycle {
			ids[j] = strconv.FormatInt(id, 10)
		}
		parts[i] = "[" + strings.Join(ids, " -> ") + "]"
	}
	return "circular dependencies detected: " + strings.Join(parts, ", ")
}
