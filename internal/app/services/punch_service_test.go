package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/app/repositories/memory"
	"github.com/blackstanton/punchclock/internal/app/services"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

type punchFixture struct {
	punches *services.PunchService
	student *models.Student
	task    *models.Task
}

// newPunchFixture wires a punch service over an empty in-memory store
// with one teacher, one student, and one task already present.
func newPunchFixture(t *testing.T) *punchFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	teacherSvc := services.NewTeacherService(store.Teachers, store.Students)
	studentSvc := services.NewStudentService(store.Students, store.Teachers)
	taskSvc := services.NewTaskService(store.Tasks)

	teacher := &models.Teacher{FirstName: "Pat", LastName: "Miller"}
	require.NoError(t, teacherSvc.Create(ctx, teacher))

	student, err := studentSvc.Create(ctx, services.StudentInput{
		FirstName: "Alex",
		LastName:  "Nguyen",
		Age:       "17",
		Year:      "11",
		TeacherID: teacher.ID,
	})
	require.NoError(t, err)

	task := &models.Task{Name: "Framing practice"}
	require.NoError(t, taskSvc.Create(ctx, task))

	return &punchFixture{
		punches: services.NewPunchService(store.Punches, store.Students, store.Tasks),
		student: student,
		task:    task,
	}
}

func TestPunchService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults start to now", func(t *testing.T) {
		f := newPunchFixture(t)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, time.Time{})
		require.NoError(t, err)

		assert.NotZero(t, punch.ID)
		assert.True(t, punch.Open())
		assert.Nil(t, punch.TimeEnd)
		assert.WithinDuration(t, time.Now().UTC(), punch.TimeStart, 2*time.Second)
	})

	t.Run("keeps an explicit start", func(t *testing.T) {
		f := newPunchFixture(t)
		start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, start)
		require.NoError(t, err)
		assert.True(t, start.Equal(punch.TimeStart))
	})

	t.Run("rejects unknown student and task", func(t *testing.T) {
		f := newPunchFixture(t)

		_, err := f.punches.Open(ctx, 999, 999, time.Time{})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		fields := make([]string, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"studentId", "taskId"}, fields)
	})

	t.Run("allows several open punches for one student", func(t *testing.T) {
		f := newPunchFixture(t)

		first, err := f.punches.Open(ctx, f.student.ID, f.task.ID, time.Time{})
		require.NoError(t, err)
		second, err := f.punches.Open(ctx, f.student.ID, f.task.ID, time.Time{})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)

		punches, err := f.punches.PunchesOf(ctx, f.student.ID)
		require.NoError(t, err)
		assert.Len(t, punches, 2)
		for _, p := range punches {
			assert.True(t, p.Open())
		}
	})
}

func TestPunchService_Close(t *testing.T) {
	ctx := context.Background()

	t.Run("closes an open punch and reports minutes", func(t *testing.T) {
		f := newPunchFixture(t)
		start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 9, 9, 45, 0, 0, time.UTC)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, start)
		require.NoError(t, err)

		closed, err := f.punches.Close(ctx, punch.ID, end)
		require.NoError(t, err)
		assert.False(t, closed.Open())

		minutes, ok := closed.Minutes()
		require.True(t, ok)
		assert.Equal(t, int64(45), minutes)
	})

	t.Run("defaults end to now", func(t *testing.T) {
		f := newPunchFixture(t)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, time.Time{})
		require.NoError(t, err)

		closed, err := f.punches.Close(ctx, punch.ID, time.Time{})
		require.NoError(t, err)
		require.NotNil(t, closed.TimeEnd)
		assert.WithinDuration(t, time.Now().UTC(), *closed.TimeEnd, 2*time.Second)
	})

	t.Run("spans midnight without losing elapsed time", func(t *testing.T) {
		f := newPunchFixture(t)
		start := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
		end := time.Date(2026, 3, 10, 0, 15, 0, 0, time.UTC)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, start)
		require.NoError(t, err)

		closed, err := f.punches.Close(ctx, punch.ID, end)
		require.NoError(t, err)

		minutes, ok := closed.Minutes()
		require.True(t, ok)
		assert.Equal(t, int64(45), minutes)
	})

	t.Run("unknown punch is not found", func(t *testing.T) {
		f := newPunchFixture(t)

		_, err := f.punches.Close(ctx, 999, time.Time{})
		assert.ErrorIs(t, err, apperrors.ErrPunchNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("closing twice is an invalid state", func(t *testing.T) {
		f := newPunchFixture(t)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, time.Time{})
		require.NoError(t, err)
		_, err = f.punches.Close(ctx, punch.ID, time.Time{})
		require.NoError(t, err)

		_, err = f.punches.Close(ctx, punch.ID, time.Time{})
		assert.ErrorIs(t, err, apperrors.ErrPunchAlreadyClosed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("end before start is rejected and the punch stays open", func(t *testing.T) {
		f := newPunchFixture(t)
		start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

		punch, err := f.punches.Open(ctx, f.student.ID, f.task.ID, start)
		require.NoError(t, err)

		_, err = f.punches.Close(ctx, punch.ID, start.Add(-time.Minute))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "timeEnd", verr.Fields[0].Field)

		current, err := f.punches.GetByID(ctx, punch.ID)
		require.NoError(t, err)
		assert.True(t, current.Open())
	})
}

func TestPunchService_CreateClosed(t *testing.T) {
	ctx := context.Background()

	t.Run("records a finished session", func(t *testing.T) {
		f := newPunchFixture(t)
		start := time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)

		punch, err := f.punches.CreateClosed(ctx, f.student.ID, f.task.ID, start, end)
		require.NoError(t, err)
		assert.False(t, punch.Open())

		minutes, ok := punch.Minutes()
		require.True(t, ok)
		assert.Equal(t, int64(90), minutes)
	})

	t.Run("requires both instants", func(t *testing.T) {
		f := newPunchFixture(t)

		_, err := f.punches.CreateClosed(ctx, f.student.ID, f.task.ID, time.Time{}, time.Time{})
		require.Error(t, err)

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		fields := make([]string, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"timeStart", "timeEnd"}, fields)
	})

	t.Run("rejects an inverted interval", func(t *testing.T) {
		f := newPunchFixture(t)
		start := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)

		_, err := f.punches.CreateClosed(ctx, f.student.ID, f.task.ID, start, start.Add(-time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero-length sessions are fine", func(t *testing.T) {
		f := newPunchFixture(t)
		instant := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)

		punch, err := f.punches.CreateClosed(ctx, f.student.ID, f.task.ID, instant, instant)
		require.NoError(t, err)

		minutes, ok := punch.Minutes()
		require.True(t, ok)
		assert.Equal(t, int64(0), minutes)
	})
}

func TestPunchService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id returns not found for unknown punches", func(t *testing.T) {
		f := newPunchFixture(t)

		_, err := f.punches.GetByID(ctx, 42)
		assert.ErrorIs(t, err, apperrors.ErrPunchNotFound)
	})

	t.Run("punches of an unknown student fail", func(t *testing.T) {
		f := newPunchFixture(t)

		_, err := f.punches.PunchesOf(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("punches of a student are scoped to that student", func(t *testing.T) {
		f := newPunchFixture(t)

		_, err := f.punches.Open(ctx, f.student.ID, f.task.ID, time.Time{})
		require.NoError(t, err)

		all, err := f.punches.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		mine, err := f.punches.PunchesOf(ctx, f.student.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
		assert.Equal(t, f.student.ID, mine[0].StudentID)
	})
}
