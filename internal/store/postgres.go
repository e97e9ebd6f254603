package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasklens/triage/internal/scoring"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const taskColumns = `id, title, due_date, estimated_hours, importance, dependencies, created_at, updated_at`

func (s *PostgresStore) CreateTask(ctx context.Context, task *Task) error {
	deps := task.Dependencies
	if deps == nil {
		deps = []int64{}
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO triage_tasks (title, due_date, estimated_hours, importance, dependencies)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		task.Title, task.DueDate.Time(), task.EstimatedHours, task.Importance, deps,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (s *PostgresStore) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM triage_tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return task, err
}

func (s *PostgresStore) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM triage_tasks WHERE 1=1`
	args := []interface{}{}
	argn := 1

	if filter.DueBefore != nil {
		query += fmt.Sprintf(" AND due_date < $%d", argn)
		args = append(args, *filter.DueBefore)
		argn++
	}
	if filter.MinImportance > 0 {
		query += fmt.Sprintf(" AND importance >= $%d", argn)
		args = append(args, filter.MinImportance)
		argn++
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argn)
		args = append(args, filter.Limit)
		argn++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argn)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *Task) error {
	deps := task.Dependencies
	if deps == nil {
		deps = []int64{}
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE triage_tasks
		SET title = $1, due_date = $2, estimated_hours = $3, importance = $4,
			dependencies = $5, updated_at = now()
		WHERE id = $6`,
		task.Title, task.DueDate.Time(), task.EstimatedHours, task.Importance, deps, task.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM triage_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Stats(ctx context.Context) (*TaskStats, error) {
	stats := &TaskStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE due_date < CURRENT_DATE),
			count(*) FILTER (WHERE due_date >= CURRENT_DATE AND due_date <= CURRENT_DATE + 7),
			coalesce(avg(estimated_hours), 0)
		FROM triage_tasks`,
	).Scan(&stats.TotalTasks, &stats.Overdue, &stats.DueWithinWeek, &stats.AvgEstimatedHours)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanTask(row pgx.Row) (*Task, error) {
	t := &Task{}
	var due time.Time
	err := row.Scan(
		&t.ID, &t.Title, &due, &t.EstimatedHours, &t.Importance,
		&t.Dependencies, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.DueDate = scoring.DateOf(due)
	if t.Dependencies == nil {
		t.Dependencies = []int64{}
	}
	return t, nil
}
