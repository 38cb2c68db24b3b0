package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/app/repositories/memory"
	"github.com/blackstanton/punchclock/internal/app/services"
	"github.com/blackstanton/punchclock/internal/pkg/apperrors"
)

type studentFixture struct {
	students *services.StudentService
	teacher  *models.Teacher
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	teacherSvc := services.NewTeacherService(store.Teachers, store.Students)
	teacher := &models.Teacher{FirstName: "Pat", LastName: "Miller"}
	require.NoError(t, teacherSvc.Create(ctx, teacher))

	return &studentFixture{
		students: services.NewStudentService(store.Students, store.Teachers),
		teacher:  teacher,
	}
}

func validInput(teacherID int64) services.StudentInput {
	return services.StudentInput{
		FirstName: "Alex",
		LastName:  "Nguyen",
		Age:       "17",
		Year:      "11",
		TeacherID: teacherID,
	}
}

// fieldNames pulls the failing field names out of a validation error.
func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	names := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		names = append(names, fe.Field)
	}
	return names
}

func TestStudentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("parses numeric fields and persists", func(t *testing.T) {
		f := newStudentFixture(t)

		student, err := f.students.Create(ctx, validInput(f.teacher.ID))
		require.NoError(t, err)

		assert.NotZero(t, student.ID)
		assert.Equal(t, 17, student.Age)
		assert.Equal(t, 11, student.Year)
		assert.Equal(t, f.teacher.ID, student.TeacherID)
	})

	t.Run("non-numeric age is a field error, not a crash", func(t *testing.T) {
		f := newStudentFixture(t)

		in := validInput(f.teacher.ID)
		in.Age = "seventeen"
		_, err := f.students.Create(ctx, in)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, []string{"age"}, fieldNames(t, err))
	})

	t.Run("negative year is rejected", func(t *testing.T) {
		f := newStudentFixture(t)

		in := validInput(f.teacher.ID)
		in.Year = "-1"
		_, err := f.students.Create(ctx, in)
		require.Error(t, err)
		assert.Equal(t, []string{"year"}, fieldNames(t, err))
	})

	t.Run("over-long last name is rejected", func(t *testing.T) {
		f := newStudentFixture(t)

		in := validInput(f.teacher.ID)
		in.LastName = strings.Repeat("n", 101)
		_, err := f.students.Create(ctx, in)
		require.Error(t, err)
		assert.Equal(t, []string{"lastName"}, fieldNames(t, err))
	})

	t.Run("a teacher selection is required", func(t *testing.T) {
		f := newStudentFixture(t)

		in := validInput(0)
		_, err := f.students.Create(ctx, in)
		require.Error(t, err)
		assert.Equal(t, []string{"teacherId"}, fieldNames(t, err))
	})

	t.Run("a dangling teacher id is rejected", func(t *testing.T) {
		f := newStudentFixture(t)

		in := validInput(999)
		_, err := f.students.Create(ctx, in)
		require.Error(t, err)
		assert.Equal(t, []string{"teacherId"}, fieldNames(t, err))
	})

	t.Run("all failing fields are reported together and nothing is written", func(t *testing.T) {
		f := newStudentFixture(t)

		_, err := f.students.Create(ctx, services.StudentInput{
			FirstName: "",
			LastName:  "",
			Age:       "abc",
			Year:      "xyz",
			TeacherID: 0,
		})
		require.Error(t, err)
		assert.ElementsMatch(t,
			[]string{"firstName", "lastName", "age", "year", "teacherId"},
			fieldNames(t, err))

		students, err := f.students.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, students)
	})
}

func TestStudentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("reassigns a student to another teacher", func(t *testing.T) {
		store := memory.NewStore()
		teacherSvc := services.NewTeacherService(store.Teachers, store.Students)
		studentSvc := services.NewStudentService(store.Students, store.Teachers)

		first := &models.Teacher{FirstName: "Pat", LastName: "Miller"}
		require.NoError(t, teacherSvc.Create(ctx, first))
		second := &models.Teacher{FirstName: "Dana", LastName: "Reyes"}
		require.NoError(t, teacherSvc.Create(ctx, second))

		student, err := studentSvc.Create(ctx, validInput(first.ID))
		require.NoError(t, err)

		in := validInput(second.ID)
		updated, err := studentSvc.Update(ctx, student.ID, in)
		require.NoError(t, err)
		assert.Equal(t, second.ID, updated.TeacherID)

		stored, err := studentSvc.GetByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, stored.TeacherID)
	})

	t.Run("never creates a row for an unknown id", func(t *testing.T) {
		f := newStudentFixture(t)

		_, err := f.students.Update(ctx, 42, validInput(f.teacher.ID))
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

		students, err := f.students.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, students)
	})
}

func TestStudentService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newStudentFixture(t)

	student, err := f.students.Create(ctx, validInput(f.teacher.ID))
	require.NoError(t, err)

	_, err = f.students.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	require.NoError(t, f.students.Delete(ctx, student.ID))
	_, err = f.students.GetByID(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentService_DeleteWithPunches(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	teacherSvc := services.NewTeacherService(store.Teachers, store.Students)
	studentSvc := services.NewStudentService(store.Students, store.Teachers)
	taskSvc := services.NewTaskService(store.Tasks)
	punchSvc := services.NewPunchService(store.Punches, store.Students, store.Tasks)

	teacher := &models.Teacher{FirstName: "Pat", LastName: "Miller"}
	require.NoError(t, teacherSvc.Create(ctx, teacher))
	student, err := studentSvc.Create(ctx, validInput(teacher.ID))
	require.NoError(t, err)
	task := &models.Task{Name: "Framing practice"}
	require.NoError(t, taskSvc.Create(ctx, task))

	punch, err := punchSvc.Open(ctx, student.ID, task.ID, time.Time{})
	require.NoError(t, err)

	// The punch references the student, so the delete is a conflict
	err = studentSvc.Delete(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentHasPunches)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The student row and its punches are still intact
	_, err = studentSvc.GetByID(ctx, student.ID)
	require.NoError(t, err)
	punches, err := punchSvc.PunchesOf(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, punches, 1)

	// Removing the punch unblocks the delete
	require.NoError(t, store.Punches.Delete(ctx, punch.ID))
	assert.NoError(t, studentSvc.Delete(ctx, student.ID))
}
