package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the postgres repository instances
type Repositories struct {
	TeacherRepository *TeacherRepository
	StudentRepository *StudentRepository
	TaskRepository    *TaskRepository
	PunchRepository   *PunchRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		TeacherRepository: NewTeacherRepository(db),
		StudentRepository: NewStudentRepository(db),
		TaskRepository:    NewTaskRepository(db),
		PunchRepository:   NewPunchRepository(db),
	}
}
