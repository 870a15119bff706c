package notification

import "time"

// WhatsappNotification is one delivery attempt tied to a permit lifecycle
// event. A row is written in pending status before the gateway call and
// updated to its terminal status afterwards; it is never retried in place.
type WhatsappNotification struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	PermitID       int64      `json:"permit_id" gorm:"column:permit_id;not null;index"`
	RecipientPhone string     `json:"recipient_phone" gorm:"column:recipient_phone;not null"`
	Type           string     `json:"type" gorm:"column:type;not null"`
	Message        string     `json:"message" gorm:"column:message;not null"`
	Status         string     `json:"status" gorm:"column:status;default:pending;index"`
	SentAt         *time.Time `json:"sent_at,omitempty" gorm:"column:sent_at"`
	ErrorMessage   *string    `json:"error_message,omitempty" gorm:"column:error_message"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (WhatsappNotification) TableName() string {
	return "whatsapp_notifications"
}
