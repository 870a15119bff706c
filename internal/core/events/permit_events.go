package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePermitSubmitted = "permit.submitted"
	EventTypePermitDecided   = "permit.decided"
)

// PermitSubmittedEvent fires after a new permit is durably stored in
// pending status; subscribers alert HR.
type PermitSubmittedEvent struct {
	BaseEvent
	PermitID   int64  `json:"permit_id"`
	EmployeeID int64  `json:"employee_id"`
	Vehicle    string `json:"vehicle"`
}

func NewPermitSubmittedEvent(permitID, employeeID int64, vehicle string) *PermitSubmittedEvent {
	return &PermitSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermitSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"permit_id":   permitID,
				"employee_id": employeeID,
				"vehicle":     vehicle,
			},
		},
		PermitID:   permitID,
		EmployeeID: employeeID,
		Vehicle:    vehicle,
	}
}

// PermitDecidedEvent fires after the pending permit has transitioned to a
// terminal status; subscribers notify the owning employee.
type PermitDecidedEvent struct {
	BaseEvent
	PermitID  int64  `json:"permit_id"`
	Status    string `json:"status"`
	DecidedBy int64  `json:"decided_by"`
}

func NewPermitDecidedEvent(permitID, decidedBy int64, status string) *PermitDecidedEvent {
	return &PermitDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermitDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"permit_id":  permitID,
				"status":     status,
				"decided_by": decidedBy,
			},
		},
		PermitID:  permitID,
		Status:    status,
		DecidedBy: decidedBy,
	}
}
