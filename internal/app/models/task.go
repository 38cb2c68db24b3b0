package models

// Task is a catalog entry students punch in and out of
type Task struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
