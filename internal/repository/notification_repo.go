package repository

import (
	"context"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

// listLimit caps the notification feed; older entries age out of view.
const listLimit = 50

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	RecipientID      int64     `gorm:"column:recipient_id;index"`
	Type             string    `gorm:"column:type"`
	Title            string    `gorm:"column:title"`
	Message          string    `gorm:"column:message"`
	RelatedBookingID *int64    `gorm:"column:related_booking_id"`
	RelatedServiceID *int64    `gorm:"column:related_service_id"`
	Read             bool      `gorm:"column:read;index"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	return &domain.Notification{
		ID:               m.ID,
		RecipientID:      m.RecipientID,
		Type:             domain.NotificationType(m.Type),
		Title:            m.Title,
		Message:          m.Message,
		RelatedBookingID: m.RelatedBookingID,
		RelatedServiceID: m.RelatedServiceID,
		Read:             m.Read,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		RecipientID:      n.RecipientID,
		Type:             string(n.Type),
		Title:            n.Title,
		Message:          n.Message,
		RelatedBookingID: n.RelatedBookingID,
		RelatedServiceID: n.RelatedServiceID,
		Read:             n.Read,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = *toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	var rows []notificationModel
	tx := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(listLimit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count)
	return count, tx.Error
}

// MarkAsRead flips a single notification, scoped to the recipient so a
// user cannot touch someone else's feed.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, recipientID int64) error {
	tx := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, recipientID int64) error {
	return r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
}
