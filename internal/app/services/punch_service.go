package services

import (
	"context"
	"fmt"
	"time"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

// PunchService drives the punch session lifecycle: a punch is created
// open, closed exactly once, and never reopened. The engine deliberately
// allows a student to hold several open punches at once; enforcing a
// single active session is the caller's policy, not the engine's.
type PunchService struct {
	punchRepo   PunchRepository
	studentRepo StudentRepository
	taskRepo    TaskRepository
	now         func() time.Time
}

// NewPunchService creates a new punch service instance
func NewPunchService(punchRepo PunchRepository, studentRepo StudentRepository, taskRepo TaskRepository) *PunchService {
	return &PunchService{
		punchRepo:   punchRepo,
		studentRepo: studentRepo,
		taskRepo:    taskRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// checkReferences verifies the student and task both resolve before a
// punch row is written.
func (s *PunchService) checkReferences(ctx context.Context, studentID, taskID int64) error {
	verr := apperrors.NewValidationError()

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		verr.Add("studentId", "student does not exist")
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("error checking task: %w", err)
	}
	if task == nil {
		verr.Add("taskId", "task does not exist")
	}

	return verr.ErrOrNil()
}

// Open starts a new punch for a student+task pair. A zero start time
// defaults to the current instant.
func (s *PunchService) Open(ctx context.Context, studentID, taskID int64, start time.Time) (*models.TaskPunch, error) {
	if err := s.checkReferences(ctx, studentID, taskID); err != nil {
		return nil, err
	}

	if start.IsZero() {
		start = s.now()
	}

	punch := &models.TaskPunch{
		StudentID: studentID,
		TaskID:    taskID,
		TimeStart: start,
	}
	if err := s.punchRepo.Create(ctx, punch); err != nil {
		return nil, fmt.Errorf("error creating punch: %w", err)
	}
	return punch, nil
}

// Close ends an open punch. Closing an unknown punch fails with a not
// found error; closing twice fails with an invalid state error. The end
// must not precede the start: sessions span real elapsed time, there is
// no date-stripping arithmetic that could go negative across midnight.
func (s *PunchService) Close(ctx context.Context, punchID int64, end time.Time) (*models.TaskPunch, error) {
	punch, err := s.punchRepo.GetByID(ctx, punchID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving punch: %w", err)
	}
	if punch == nil {
		return nil, apperrors.ErrPunchNotFound
	}
	if !punch.Open() {
		return nil, apperrors.ErrPunchAlreadyClosed
	}

	if end.IsZero() {
		end = s.now()
	}
	if end.Before(punch.TimeStart) {
		return nil, apperrors.NewValidationError().
			Add("timeEnd", "end time precedes the punch start")
	}

	punch.TimeEnd = &end
	if err := s.punchRepo.Update(ctx, punch); err != nil {
		return nil, err
	}
	return punch, nil
}

// CreateClosed records an already-finished session from administrator
// supplied start and end instants.
func (s *PunchService) CreateClosed(ctx context.Context, studentID, taskID int64, start, end time.Time) (*models.TaskPunch, error) {
	if err := s.checkReferences(ctx, studentID, taskID); err != nil {
		return nil, err
	}

	verr := apperrors.NewValidationError()
	if start.IsZero() {
		verr.Add("timeStart", "start time is required")
	}
	if end.IsZero() {
		verr.Add("timeEnd", "end time is required")
	} else if !start.IsZero() && end.Before(start) {
		verr.Add("timeEnd", "end time precedes the punch start")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	punch := &models.TaskPunch{
		StudentID: studentID,
		TaskID:    taskID,
		TimeStart: start,
		TimeEnd:   &end,
	}
	if err := s.punchRepo.Create(ctx, punch); err != nil {
		return nil, fmt.Errorf("error creating punch: %w", err)
	}
	return punch, nil
}

// GetByID retrieves a punch snapshot by id
func (s *PunchService) GetByID(ctx context.Context, id int64) (*models.TaskPunch, error) {
	punch, err := s.punchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving punch: %w", err)
	}
	if punch == nil {
		return nil, apperrors.ErrPunchNotFound
	}
	return punch, nil
}

// GetAll retrieves all punches
func (s *PunchService) GetAll(ctx context.Context) ([]*models.TaskPunch, error) {
	punches, err := s.punchRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving punches: %w", err)
	}
	return punches, nil
}

// PunchesOf retrieves all punches recorded for a student
func (s *PunchService) PunchesOf(ctx context.Context, studentID int64) ([]*models.TaskPunch, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	punches, err := s.punchRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving punches of student: %w", err)
	}
	return punches, nil
}
