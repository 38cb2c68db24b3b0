package memory

import (
	"context"
	"sync"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

// StudentRepository keeps student rows in a mutex-guarded map.
type StudentRepository struct {
	mu      sync.RWMutex
	rows    map[int64]models.Student
	nextID  int64
	punches *PunchRepository
}

// NewStudentRepository creates an empty student repository. The punch
// repository is consulted for the delete conflict check.
func NewStudentRepository(punches *PunchRepository) *StudentRepository {
	return &StudentRepository{rows: make(map[int64]models.Student), punches: punches}
}

// Create inserts a new student and assigns its id.
func (r *StudentRepository) Create(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	student.ID = r.nextID
	r.rows[student.ID] = *student
	return nil
}

// GetByID returns a snapshot, or (nil, nil) when the id is unknown.
func (r *StudentRepository) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// GetAll returns snapshots of all students in insertion order.
func (r *StudentRepository) GetAll(_ context.Context) ([]*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]*models.Student, 0, len(r.rows))
	for _, id := range sortedIDs(r.rows) {
		row := r.rows[id]
		students = append(students, &row)
	}
	return students, nil
}

// GetByTeacherID returns snapshots of the students assigned to a teacher.
func (r *StudentRepository) GetByTeacherID(_ context.Context, teacherID int64) ([]*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var students []*models.Student
	for _, id := range sortedIDs(r.rows) {
		row := r.rows[id]
		if row.TeacherID == teacherID {
			students = append(students, &row)
		}
	}
	return students, nil
}

// Update overwrites the row matching the student's id.
func (r *StudentRepository) Update(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.rows[student.ID] = *student
	return nil
}

// Delete removes a student, rejecting the delete while punches still
// reference it.
func (r *StudentRepository) Delete(_ context.Context, id int64) error {
	if r.punches.existsForStudent(id) {
		return apperrors.ErrStudentHasPunches
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.rows, id)
	return nil
}
