// Package memory provides an in-process implementation of the entity
// repositories. It backs the test suite and the `database.driver: memory`
// mode for single-user local runs. Rows are stored by value, so every
// read hands back a snapshot; mutating a returned entity has no effect
// until an explicit update call.
package memory

import "sort"

// Store bundles the in-memory repositories over one shared dataset.
type Store struct {
	Teachers *TeacherRepository
	Students *StudentRepository
	Tasks    *TaskRepository
	Punches  *PunchRepository
}

// NewStore initializes an empty in-memory store. Ids are assigned from a
// per-entity counter and never reused, matching serial columns.
func NewStore() *Store {
	punches := NewPunchRepository()
	students := NewStudentRepository(punches)
	return &Store{
		Teachers: NewTeacherRepository(students),
		Students: students,
		Tasks:    NewTaskRepository(punches),
		Punches:  punches,
	}
}

func sortedIDs[V any](rows map[int64]V) []int64 {
	keys := make([]int64, 0, len(rows))
	for id := range rows {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	return keys
}
