package dto

// TaskRequest carries raw task field values for create and update
type TaskRequest struct {
	Name string `json:"name" example:"Engine Diagnostics"`
}
