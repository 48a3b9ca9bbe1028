package domain

import "time"

// SlotAssignment is an interview slot record owned by the scheduling service.
// Only PanelistID and the time window are consumed here; a nil PanelistID
// means the slot is unassigned and must never match any user.
type SlotAssignment struct {
	ID         string    `json:"id"`
	PanelistID *string   `json:"panelistId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
}
