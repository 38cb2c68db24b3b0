package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/app/services"
)

// CreateDemoData populates an empty store with a small demo roster so a
// fresh install has something to punch against. It is a no-op when any
// teachers already exist.
func CreateDemoData(
	ctx context.Context,
	teacherRepo services.TeacherRepository,
	studentRepo services.StudentRepository,
	taskRepo services.TaskRepository,
	lgr zerolog.Logger,
) error {
	existing, err := teacherRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Debug().Int("teachers", len(existing)).Msg("Store already populated, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo data...")
	var finalErr error

	carpentry := &models.Teacher{
		FirstName: "Pat",
		LastName:  "Miller",
		Email:     "pmiller@school.edu",
		Phone:     "555-0101",
	}
	if err := teacherRepo.Create(ctx, carpentry); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo teacher")
		finalErr = errors.Join(finalErr, err)
	}

	culinary := &models.Teacher{
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dreyes@school.edu",
		Phone:     "555-0102",
	}
	if err := teacherRepo.Create(ctx, culinary); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo teacher")
		finalErr = errors.Join(finalErr, err)
	}

	if carpentry.ID > 0 {
		students := []*models.Student{
			{FirstName: "Alex", LastName: "Nguyen", Age: 17, Year: 11, TeacherID: carpentry.ID},
			{FirstName: "Jordan", LastName: "Baker", Age: 18, Year: 12, TeacherID: carpentry.ID},
		}
		for _, s := range students {
			if err := studentRepo.Create(ctx, s); err != nil {
				lgr.Error().Err(err).Str("lastName", s.LastName).Msg("Error creating demo student")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if culinary.ID > 0 {
		s := &models.Student{FirstName: "Casey", LastName: "Ortiz", Age: 16, Year: 10, TeacherID: culinary.ID}
		if err := studentRepo.Create(ctx, s); err != nil {
			lgr.Error().Err(err).Str("lastName", s.LastName).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, name := range []string{"Framing practice", "Knife skills", "Shop cleanup"} {
		if err := taskRepo.Create(ctx, &models.Task{Name: name}); err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating demo task")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data created")
	}
	return finalErr
}
