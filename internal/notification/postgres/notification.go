package postgres

import (
	"log/slog"
	"time"

	notificationDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/permit-management/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	dm := notification.ToDataModel(n)
	if err := r.db.Create(dm).Error; err != nil {
		r.logger.Error("failed to create notification", "error", err, "permit_id", n.PermitID)
		return err
	}
	n.ID = dm.ID
	n.CreatedAt = dm.CreatedAt
	n.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *NotificationRepository) MarkSent(id int64, sentAt time.Time) error {
	err := r.db.Model(&notificationDatamodel.WhatsappNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     notification.StatusSent,
			"sent_at":    sentAt,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		r.logger.Error("failed to mark notification sent", "error", err, "notification_id", id)
	}
	return err
}

func (r *NotificationRepository) MarkFailed(id int64, reason string) error {
	err := r.db.Model(&notificationDatamodel.WhatsappNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        notification.StatusFailed,
			"error_message": reason,
			"updated_at":    time.Now(),
		}).Error
	if err != nil {
		r.logger.Error("failed to mark notification failed", "error", err, "notification_id", id)
	}
	return err
}

func (r *NotificationRepository) ListByPermitID(permitID int64) ([]*notification.Notification, error) {
	var rows []*notificationDatamodel.WhatsappNotification
	err := r.db.Where("permit_id = ?", permitID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Error("failed to list notifications", "error", err, "permit_id", permitID)
		return nil, err
	}
	return notification.FromDataModelSlice(rows), nil
}
