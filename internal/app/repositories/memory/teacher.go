package memory

import (
	"context"
	"sync"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

// TeacherRepository keeps teacher rows in a mutex-guarded map.
type TeacherRepository struct {
	mu       sync.RWMutex
	rows     map[int64]models.Teacher
	nextID   int64
	students *StudentRepository
}

// NewTeacherRepository creates an empty teacher repository. The student
// repository is consulted for the delete conflict check.
func NewTeacherRepository(students *StudentRepository) *TeacherRepository {
	return &TeacherRepository{rows: make(map[int64]models.Teacher), students: students}
}

// Create inserts a new teacher and assigns its id.
func (r *TeacherRepository) Create(_ context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	teacher.ID = r.nextID
	r.rows[teacher.ID] = *teacher
	return nil
}

// GetByID returns a snapshot, or (nil, nil) when the id is unknown.
func (r *TeacherRepository) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// GetAll returns snapshots of all teachers in insertion order.
func (r *TeacherRepository) GetAll(_ context.Context) ([]*models.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teachers := make([]*models.Teacher, 0, len(r.rows))
	for _, id := range sortedIDs(r.rows) {
		row := r.rows[id]
		teachers = append(teachers, &row)
	}
	return teachers, nil
}

// Update overwrites the row matching the teacher's id.
func (r *TeacherRepository) Update(_ context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	r.rows[teacher.ID] = *teacher
	return nil
}

// Delete removes a teacher, rejecting the delete while students are
// still assigned.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	assigned, err := r.students.GetByTeacherID(ctx, id)
	if err != nil {
		return err
	}
	if len(assigned) > 0 {
		return apperrors.ErrTeacherHasStudents
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(r.rows, id)
	return nil
}
