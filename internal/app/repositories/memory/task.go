package memory

import (
	"context"
	"sync"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

// TaskRepository keeps task rows in a mutex-guarded map.
type TaskRepository struct {
	mu      sync.RWMutex
	rows    map[int64]models.Task
	nextID  int64
	punches *PunchRepository
}

// NewTaskRepository creates an empty task repository. The punch
// repository is consulted for the delete conflict check.
func NewTaskRepository(punches *PunchRepository) *TaskRepository {
	return &TaskRepository{rows: make(map[int64]models.Task), punches: punches}
}

// Create inserts a new task and assigns its id.
func (r *TaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	task.ID = r.nextID
	r.rows[task.ID] = *task
	return nil
}

// GetByID returns a snapshot, or (nil, nil) when the id is unknown.
func (r *TaskRepository) GetByID(_ context.Context, id int64) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// GetAll returns snapshots of all tasks in insertion order.
func (r *TaskRepository) GetAll(_ context.Context) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*models.Task, 0, len(r.rows))
	for _, id := range sortedIDs(r.rows) {
		row := r.rows[id]
		tasks = append(tasks, &row)
	}
	return tasks, nil
}

// Update overwrites the row matching the task's id.
func (r *TaskRepository) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[task.ID]; !ok {
		return apperrors.ErrTaskNotFound
	}
	r.rows[task.ID] = *task
	return nil
}

// Delete removes a task, rejecting the delete while punches still
// reference it.
func (r *TaskRepository) Delete(_ context.Context, id int64) error {
	if r.punches.existsForTask(id) {
		return apperrors.ErrTaskHasPunches
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrTaskNotFound
	}
	delete(r.rows, id)
	return nil
}
