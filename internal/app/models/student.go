package models

// Student represents an enrolled student assigned to exactly one teacher
type Student struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Year      int    `json:"year"` // grade/cohort year
	TeacherID int64  `json:"teacherId"`
}
