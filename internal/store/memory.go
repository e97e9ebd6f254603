package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps tasks in process memory. Used when no database URL is
// configured, and by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*Task
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[int64]*Task), nextID: 1}
}

func (s *MemoryStore) CreateTask(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Dependencies == nil {
		task.Dependencies = []int64{}
	}
	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *MemoryStore) GetTask(_ context.Context, id int64) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *task
	return &cp, nil
}

func (s *MemoryStore) ListTasks(_ context.Context, filter TaskFilter) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*Task
	skipped := 0
	for _, id := range ids {
		task := s.tasks[id]
		if filter.DueBefore != nil && !task.DueDate.Time().Before(*filter.DueBefore) {
			continue
		}
		if filter.MinImportance > 0 && task.Importance < filter.MinImportance {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		cp := *task
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return ErrNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	if task.Dependencies == nil {
		task.Dependencies = []int64{}
	}
	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (*TaskStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &TaskStats{TotalTasks: len(s.tasks)}
	now := time.Now().UTC()
	var hours float64
	for _, task := range s.tasks {
		days := task.DueDate.DaysUntil(now)
		switch {
		case days < 0:
			stats.Overdue++
		case days <= 7:
			stats.DueWithinWeek++
		}
		hours += task.EstimatedHours
	}
	if stats.TotalTasks > 0 {
		stats.AvgEstimatedHours = hours / float64(stats.TotalTasks)
	}
	return stats, nil
}

func (s *MemoryStore) Close() error { return nil }
