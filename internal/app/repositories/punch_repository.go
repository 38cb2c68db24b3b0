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

// PunchRepository handles database operations for task punches
type PunchRepository struct {
	db *pgxpool.Pool
}

// NewPunchRepository creates a new punch repository
func NewPunchRepository(db *pgxpool.Pool) *PunchRepository {
	return &PunchRepository{
		db: db,
	}
}

// Create inserts a new punch and assigns its id. TimeEnd may be nil for
// an open punch.
func (r *PunchRepository) Create(ctx context.Context, punch *models.TaskPunch) error {
	query := `
		INSERT INTO task_punches (student_id, task_id, time_start, time_end)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		punch.StudentID, punch.TaskID, punch.TimeStart, punch.TimeEnd,
	).Scan(&punch.ID)
	if err != nil {
		return fmt.Errorf("error creating punch: %w", err)
	}

	return nil
}

// GetByID retrieves a punch by ID. Returns (nil, nil) when no row exists.
func (r *PunchRepository) GetByID(ctx context.Context, id int64) (*models.TaskPunch, error) {
	query := `
		SELECT id, student_id, task_id, time_start, time_end
		FROM task_punches
		WHERE id = $1
	`

	var punch models.TaskPunch
	err := r.db.QueryRow(ctx, query, id).Scan(
		&punch.ID,
		&punch.StudentID,
		&punch.TaskID,
		&punch.TimeStart,
		&punch.TimeEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving punch: %w", err)
	}

	return &punch, nil
}

// GetAll retrieves all punches in insertion order
func (r *PunchRepository) GetAll(ctx context.Context) ([]*models.TaskPunch, error) {
	return r.scanPunches(ctx, `
		SELECT id, student_id, task_id, time_start, time_end
		FROM task_punches
		ORDER BY id
	`)
}

// GetByStudentID retrieves all punches recorded for a student
func (r *PunchRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.TaskPunch, error) {
	return r.scanPunches(ctx, `
		SELECT id, student_id, task_id, time_start, time_end
		FROM task_punches
		WHERE student_id = $1
		ORDER BY id
	`, studentID)
}

func (r *PunchRepository) scanPunches(ctx context.Context, query string, args ...any) ([]*models.TaskPunch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []*models.TaskPunch
	for rows.Next() {
		var punch models.TaskPunch
		if err := rows.Scan(
			&punch.ID,
			&punch.StudentID,
			&punch.TaskID,
			&punch.TimeStart,
			&punch.TimeEnd,
		); err != nil {
			return nil, err
		}
		punches = append(punches, &punch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return punches, nil
}

// Update overwrites the row matching the punch's id
func (r *PunchRepository) Update(ctx context.Context, punch *models.TaskPunch) error {
	query := `
		UPDATE task_punches
		SET student_id = $1, task_id = $2, time_start = $3, time_end = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		punch.StudentID, punch.TaskID, punch.TimeStart, punch.TimeEnd, punch.ID)
	if err != nil {
		return fmt.Errorf("error updating punch: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPunchNotFound
	}

	return nil
}

// Delete removes a punch
func (r *PunchRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM task_punches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting punch: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPunchNotFound
	}

	return nil
}
