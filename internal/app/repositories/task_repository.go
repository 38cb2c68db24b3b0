package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

// TaskRepository handles database operations for the task catalog
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create inserts a new task and assigns its id
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (name) VALUES ($1) RETURNING id`,
		task.Name,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("error creating task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID. Returns (nil, nil) when no row exists.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM tasks WHERE id = $1`, id,
	).Scan(&task.ID, &task.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}

	return &task, nil
}

// GetAll retrieves all tasks in insertion order
func (r *TaskRepository) GetAll(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Name); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update overwrites the row matching the task's id
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE tasks SET name = $1 WHERE id = $2`,
		task.Name, task.ID)
	if err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task. Deleting a task that still has recorded
// punches fails with ErrTaskHasPunches; orphaning punch rows is not
// allowed.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	var hasPunches bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM task_punches WHERE task_id = $1)`,
		id).Scan(&hasPunches)
	if err != nil {
		return fmt.Errorf("error checking recorded punches: %w", err)
	}

	if hasPunches {
		return apperrors.ErrTaskHasPunches
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}
