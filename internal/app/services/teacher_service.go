package services

import (
	"context"
	"fmt"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
	"github.com/blackstanton/punchclock/internal/pkg/validation"
)

// TeacherService handles teacher-related operations
type TeacherService struct {
	teacherRepo TeacherRepository
	studentRepo StudentRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo TeacherRepository, studentRepo StudentRepository) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
	}
}

// validateTeacher validates teacher data before any store write
func (s *TeacherService) validateTeacher(teacher *models.Teacher) error {
	verr := apperrors.NewValidationError()

	if !validation.RequiredString(teacher.FirstName) {
		verr.Add("firstName", "first name is required")
	} else if !validation.NewStringValidation(teacher.FirstName).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		verr.Add("firstName", "first name is too long")
	}
	if !validation.RequiredString(teacher.LastName) {
		verr.Add("lastName", "last name is required")
	} else if !validation.NewStringValidation(teacher.LastName).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		verr.Add("lastName", "last name is too long")
	}

	// Email and phone are optional in the admin screens, checked only
	// when present.
	if ok := validation.NewStringValidation(teacher.Email).
		WithRequired(false).
		WithPattern(validation.CompiledPatterns.Email).
		Validate(); !ok {
		verr.Add("email", "email format is invalid")
	}
	if ok := validation.NewStringValidation(teacher.Phone).
		WithRequired(false).
		WithPattern(validation.CompiledPatterns.Phone).
		Validate(); !ok {
		verr.Add("phone", "phone format is invalid")
	}

	return verr.ErrOrNil()
}

// Create validates and persists a new teacher, assigning its id
func (s *TeacherService) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(teacher); err != nil {
		return err
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// GetByID retrieves a teacher snapshot by id
func (s *TeacherService) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	if teacher == nil {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

// GetAll retrieves all teachers
func (s *TeacherService) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

// Update validates and overwrites an existing teacher. It never creates
// a row for an unknown id.
func (s *TeacherService) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(teacher); err != nil {
		return err
	}

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return err
	}
	return nil
}

// SetPhotoURL records the stored photo location for a teacher
func (s *TeacherService) SetPhotoURL(ctx context.Context, id int64, photoURL string) (*models.Teacher, error) {
	teacher, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.PhotoURL = photoURL
	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Delete removes a teacher. The delete is rejected while students are
// still assigned; reassign or remove them first.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	return s.teacherRepo.Delete(ctx, id)
}

// StudentsOf retrieves all students assigned to a teacher
func (s *TeacherService) StudentsOf(ctx context.Context, teacherID int64) ([]*models.Student, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	if teacher == nil {
		return nil, apperrors.ErrTeacherNotFound
	}

	students, err := s.studentRepo.GetByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students of teacher: %w", err)
	}
	return students, nil
}
