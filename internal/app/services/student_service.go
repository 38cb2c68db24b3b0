package services

import (
	"context"
	"fmt"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
	"github.com/blackstanton/punchclock/internal/pkg/validation"
)

// StudentInput carries raw student field values as supplied by the
// caller. Age and year stay strings until the validation layer has
// parsed them; a non-numeric value is a field error, not a crash.
type StudentInput struct {
	FirstName string
	LastName  string
	Age       string
	Year      string
	TeacherID int64
}

// StudentService handles student-related operations
type StudentService struct {
	studentRepo StudentRepository
	teacherRepo TeacherRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository, teacherRepo TeacherRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
	}
}

// validateStudent checks and normalizes raw input into a student row.
// All failures are reported per-field; nothing is written when any
// field fails.
func (s *StudentService) validateStudent(ctx context.Context, in StudentInput) (*models.Student, error) {
	verr := apperrors.NewValidationError()
	student := &models.Student{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		TeacherID: in.TeacherID,
	}

	if !validation.RequiredString(in.FirstName) {
		verr.Add("firstName", "first name is required")
	} else if !validation.NewStringValidation(in.FirstName).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		verr.Add("firstName", "first name is too long")
	}
	if !validation.RequiredString(in.LastName) {
		verr.Add("lastName", "last name is required")
	} else if !validation.NewStringValidation(in.LastName).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		verr.Add("lastName", "last name is too long")
	}

	if age, ok := validation.ParseNonNegativeInt(in.Age); ok {
		student.Age = age
	} else {
		verr.Add("age", "age must be a non-negative number")
	}
	if year, ok := validation.ParseNonNegativeInt(in.Year); ok {
		student.Year = year
	} else {
		verr.Add("year", "year must be a non-negative number")
	}

	// A missing teacher selection and a dangling teacher id are both
	// validation failures on the teacherId field.
	if in.TeacherID <= 0 {
		verr.Add("teacherId", "a teacher is required")
	} else {
		teacher, err := s.teacherRepo.GetByID(ctx, in.TeacherID)
		if err != nil {
			return nil, fmt.Errorf("error checking teacher: %w", err)
		}
		if teacher == nil {
			verr.Add("teacherId", "teacher does not exist")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return student, nil
}

// Create validates raw input and persists a new student
func (s *StudentService) Create(ctx context.Context, in StudentInput) (*models.Student, error) {
	student, err := s.validateStudent(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student snapshot by id
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// GetAll retrieves all students
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// Update validates raw input and overwrites an existing student,
// including re-assignment to a different teacher. It never creates a
// row for an unknown id.
func (s *StudentService) Update(ctx context.Context, id int64, in StudentInput) (*models.Student, error) {
	student, err := s.validateStudent(ctx, in)
	if err != nil {
		return nil, err
	}

	student.ID = id
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}
