package models

// Teacher represents a teacher supervising a group of students
type Teacher struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	// PhotoURL points at the stored profile photo, empty when none was uploaded
	PhotoURL string `json:"photoUrl,omitempty"`
}
