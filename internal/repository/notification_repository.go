package repository

import (
	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser lists a user's notifications, newest first
func (r *GormNotificationRepository) ListByUser(userID uint64, params utils.PaginationParams) ([]models.Notification, int64, error) {
	var notifications []models.Notification

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("date DESC").Order("id DESC").Scopes(database.Paginate(params)).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *GormNotificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}
