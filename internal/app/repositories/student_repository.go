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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student and assigns its id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, age, year, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.FirstName, student.LastName, student.Age, student.Year, student.TeacherID,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID. Returns (nil, nil) when no row exists.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, first_name, last_name, age, year, teacher_id
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Age,
		&student.Year,
		&student.TeacherID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students in insertion order
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.scanStudents(ctx, `
		SELECT id, first_name, last_name, age, year, teacher_id
		FROM students
		ORDER BY id
	`)
}

// GetByTeacherID retrieves all students assigned to a teacher
func (r *StudentRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Student, error) {
	return r.scanStudents(ctx, `
		SELECT id, first_name, last_name, age, year, teacher_id
		FROM students
		WHERE teacher_id = $1
		ORDER BY id
	`, teacherID)
}

func (r *StudentRepository) scanStudents(ctx context.Context, query string, args ...any) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.Age,
			&student.Year,
			&student.TeacherID,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update overwrites the row matching the student's id
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, age = $3, year = $4, teacher_id = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.Age, student.Year, student.TeacherID, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Deleting a student that still has recorded
// punches fails with ErrStudentHasPunches; orphaning punch rows is not
// allowed.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	var hasPunches bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM task_punches WHERE student_id = $1)`,
		id).Scan(&hasPunches)
	if err != nil {
		return fmt.Errorf("error checking recorded punches: %w", err)
	}

	if hasPunches {
		return apperrors.ErrStudentHasPunches
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
