package dto

// StudentRequest carries raw student field values for create and update.
// Age and year arrive as free-text input from the admin forms and are
// parsed by the validation layer, not by the transport.
type StudentRequest struct {
	FirstName string `json:"firstName" example:"Jamie"`
	LastName  string `json:"lastName" example:"Walsh"`
	Age       string `json:"age" example:"17"`
	Year      string `json:"year" example:"2"`
	TeacherID int64  `json:"teacherId" example:"1"`
}
