package dto

// TeacherRequest carries raw teacher field values for create and update.
// Email and phone are optional in the admin screens.
type TeacherRequest struct {
	FirstName string `json:"firstName" example:"Evan"`
	LastName  string `json:"lastName" example:"Black"`
	Email     string `json:"email,omitempty" example:"evan.black@boces.example.edu"`
	Phone     string `json:"phone,omitempty" example:"555-0134"`
}
