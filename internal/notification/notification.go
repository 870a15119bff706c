package notification

import (
	"context"
	"time"

	notificationDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/notification"
)

const (
	KindHRNotification       = "hr_notification"
	KindEmployeeNotification = "employee_notification"

	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Notification is one delivery attempt for a permit lifecycle event. It is
// created pending and moves at most once, to sent or failed.
type Notification struct {
	ID             int64      `json:"id"`
	PermitID       int64      `json:"permit_id"`
	RecipientPhone string     `json:"recipient_phone"`
	Type           string     `json:"type"`
	Message        string     `json:"message"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DeliveryResult is the gateway's answer for one send attempt. Ordinary
// delivery failure is a value here, never a Go error.
type DeliveryResult struct {
	Delivered bool
	Reason    string
}

// Gateway is the external messaging provider abstraction.
type Gateway interface {
	Send(ctx context.Context, recipient, message string) DeliveryResult
}

// Repository defines the data access methods for notification records.
type Repository interface {
	Create(n *Notification) error
	MarkSent(id int64, sentAt time.Time) error
	MarkFailed(id int64, reason string) error
	ListByPermitID(permitID int64) ([]*Notification, error)
}

func ToDataModel(n *Notification) *notificationDatamodel.WhatsappNotification {
	return &notificationDatamodel.WhatsappNotification{
		ID:             n.ID,
		PermitID:       n.PermitID,
		RecipientPhone: n.RecipientPhone,
		Type:           n.Type,
		Message:        n.Message,
		Status:         n.Status,
		SentAt:         n.SentAt,
		ErrorMessage:   n.ErrorMessage,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func FromDataModel(n *notificationDatamodel.WhatsappNotification) *Notification {
	return &Notification{
		ID:             n.ID,
		PermitID:       n.PermitID,
		RecipientPhone: n.RecipientPhone,
		Type:           n.Type,
		Message:        n.Message,
		Status:         n.Status,
		SentAt:         n.SentAt,
		ErrorMessage:   n.ErrorMessage,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func FromDataModelSlice(notifications []*notificationDatamodel.WhatsappNotification) []*Notification {
	result := make([]*Notification, len(notifications))
	for i, n := range notifications {
		result[i] = FromDataModel(n)
	}
	return result
}
