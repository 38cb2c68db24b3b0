package dto

import (
	"time"

	"github.com/blackstanton/punchclock/internal/app/models"
)

// OpenPunchRequest starts a new punch for a student+task pair.
// TimeStart defaults to the current instant when omitted.
type OpenPunchRequest struct {
	StudentID int64      `json:"studentId" example:"1"`
	TaskID    int64      `json:"taskId" example:"3"`
	TimeStart *time.Time `json:"timeStart,omitempty"`
}

// ClosePunchRequest ends an open punch. TimeEnd defaults to the current
// instant when omitted.
type ClosePunchRequest struct {
	TimeEnd *time.Time `json:"timeEnd,omitempty"`
}

// BackfillPunchRequest creates an already-closed punch from
// administrator-supplied start and end instants.
type BackfillPunchRequest struct {
	StudentID int64     `json:"studentId" example:"1"`
	TaskID    int64     `json:"taskId" example:"3"`
	TimeStart time.Time `json:"timeStart"`
	TimeEnd   time.Time `json:"timeEnd"`
}

// PunchResponse is a punch snapshot with its derived state and, once
// closed, the elapsed whole minutes.
type PunchResponse struct {
	ID        int64      `json:"id"`
	StudentID int64      `json:"studentId"`
	TaskID    int64      `json:"taskId"`
	TimeStart time.Time  `json:"timeStart"`
	TimeEnd   *time.Time `json:"timeEnd,omitempty"`
	State     string     `json:"state" example:"open" enums:"open,closed"`
	Minutes   *int64     `json:"minutes,omitempty"`
}

// NewPunchResponse derives the response view from a punch snapshot.
func NewPunchResponse(p *models.TaskPunch) PunchResponse {
	resp := PunchResponse{
		ID:        p.ID,
		StudentID: p.StudentID,
		TaskID:    p.TaskID,
		TimeStart: p.TimeStart,
		TimeEnd:   p.TimeEnd,
		State:     "open",
	}
	if minutes, ok := p.Minutes(); ok {
		resp.State = "closed"
		resp.Minutes = &minutes
	}
	return resp
}

// NewPunchResponses maps a punch list into response views.
func NewPunchResponses(punches []*models.TaskPunch) []PunchResponse {
	out := make([]PunchResponse, 0, len(punches))
	for _, p := range punches {
		out = append(out, NewPunchResponse(p))
	}
	return out
}
