// Package services holds the business core: field and cross-field
// validation, the punch session lifecycle, and entity CRUD orchestration.
// Persistence is reached through the repository interfaces below, which
// the postgres and memory stores both satisfy.
package services

import (
	"context"

	"github.com/blackstanton/punchclock/internal/app/models"
)

// TeacherRepository is the store contract for teacher rows.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository is the store contract for student rows.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// TaskRepository is the store contract for task rows.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}

// PunchRepository is the store contract for task punch rows.
type PunchRepository interface {
	Create(ctx context.Context, punch *models.TaskPunch) error
	GetByID(ctx context.Context, id int64) (*models.TaskPunch, error)
	GetAll(ctx context.Context) ([]*models.TaskPunch, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.TaskPunch, error)
	Update(ctx context.Context, punch *models.TaskPunch) error
	Delete(ctx context.Context, id int64) error
}
