package models

import "time"

// TaskPunch records an interval during which a student worked on a task.
// TimeEnd is nil while the session is still in progress.
type TaskPunch struct {
	ID        int64      `json:"id"`
	StudentID int64      `json:"studentId"`
	TaskID    int64      `json:"taskId"`
	TimeStart time.Time  `json:"timeStart"`
	TimeEnd   *time.Time `json:"timeEnd,omitempty"`
}

// Open reports whether the punch is still in progress.
func (p *TaskPunch) Open() bool {
	return p.TimeEnd == nil
}

// Duration returns the elapsed wall-clock time between start and end.
// The second return value is false while the punch is open.
func (p *TaskPunch) Duration() (time.Duration, bool) {
	if p.TimeEnd == nil {
		return 0, false
	}
	return p.TimeEnd.Sub(p.TimeStart), true
}

// Minutes returns the elapsed time in whole minutes, the unit the punch
// clock reports to callers. False while the punch is open.
func (p *TaskPunch) Minutes() (int64, bool) {
	d, ok := p.Duration()
	if !ok {
		return 0, false
	}
	return int64(d.Minutes()), true
}
