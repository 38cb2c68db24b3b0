package memory

import (
	"context"
	"sync"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

// PunchRepository keeps punch rows in a mutex-guarded map.
type PunchRepository struct {
	mu     sync.RWMutex
	rows   map[int64]models.TaskPunch
	nextID int64
}

// NewPunchRepository creates an empty punch repository.
func NewPunchRepository() *PunchRepository {
	return &PunchRepository{rows: make(map[int64]models.TaskPunch)}
}

// Create inserts a new punch and assigns its id.
func (r *PunchRepository) Create(_ context.Context, punch *models.TaskPunch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	punch.ID = r.nextID
	r.rows[punch.ID] = clonePunch(*punch)
	return nil
}

// GetByID returns a snapshot, or (nil, nil) when the id is unknown.
func (r *PunchRepository) GetByID(_ context.Context, id int64) (*models.TaskPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	row = clonePunch(row)
	return &row, nil
}

// GetAll returns snapshots of all punches in insertion order.
func (r *PunchRepository) GetAll(_ context.Context) ([]*models.TaskPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	punches := make([]*models.TaskPunch, 0, len(r.rows))
	for _, id := range sortedIDs(r.rows) {
		row := clonePunch(r.rows[id])
		punches = append(punches, &row)
	}
	return punches, nil
}

// GetByStudentID returns snapshots of all punches recorded for a student.
func (r *PunchRepository) GetByStudentID(_ context.Context, studentID int64) ([]*models.TaskPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var punches []*models.TaskPunch
	for _, id := range sortedIDs(r.rows) {
		if r.rows[id].StudentID == studentID {
			row := clonePunch(r.rows[id])
			punches = append(punches, &row)
		}
	}
	return punches, nil
}

// Update overwrites the row matching the punch's id.
func (r *PunchRepository) Update(_ context.Context, punch *models.TaskPunch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[punch.ID]; !ok {
		return apperrors.ErrPunchNotFound
	}
	r.rows[punch.ID] = clonePunch(*punch)
	return nil
}

// Delete removes a punch.
func (r *PunchRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrPunchNotFound
	}
	delete(r.rows, id)
	return nil
}

// existsForStudent reports whether any punch references the student.
func (r *PunchRepository) existsForStudent(studentID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.StudentID == studentID {
			return true
		}
	}
	return false
}

// existsForTask reports whether any punch references the task.
func (r *PunchRepository) existsForTask(taskID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.TaskID == taskID {
			return true
		}
	}
	return false
}

// clonePunch copies the TimeEnd pointer target so stored rows and
// returned snapshots never alias.
func clonePunch(p models.TaskPunch) models.TaskPunch {
	if p.TimeEnd != nil {
		end := *p.TimeEnd
		p.TimeEnd = &end
	}
	return p
}
