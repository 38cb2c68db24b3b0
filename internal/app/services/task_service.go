package services

import (
	"context"
	"fmt"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
	"github.com/blackstanton/punchclock/internal/pkg/validation"
)

// TaskService handles the task catalog
type TaskService struct {
	taskRepo TaskRepository
}

// NewTaskService creates a new task service instance
func NewTaskService(taskRepo TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

func (s *TaskService) validateTask(task *models.Task) error {
	verr := apperrors.NewValidationError()
	if !validation.RequiredString(task.Name) {
		verr.Add("name", "task name is required")
	}
	return verr.ErrOrNil()
}

// Create validates and persists a new task, assigning its id
func (s *TaskService) Create(ctx context.Context, task *models.Task) error {
	if err := s.validateTask(task); err != nil {
		return err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("error creating task: %w", err)
	}
	return nil
}

// GetByID retrieves a task snapshot by id
func (s *TaskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

// GetAll retrieves the full task catalog
func (s *TaskService) GetAll(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.taskRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving tasks: %w", err)
	}
	return tasks, nil
}

// Update validates and overwrites an existing task
func (s *TaskService) Update(ctx context.Context, task *models.Task) error {
	if err := s.validateTask(task); err != nil {
		return err
	}

	return s.taskRepo.Update(ctx, task)
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.taskRepo.Delete(ctx, id)
}
