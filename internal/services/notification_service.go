package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPushTokenRequired    = errors.New("push token is required")
)

// NotificationService manages push subscriptions and the notification inbox
type NotificationService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Subscribe stores the device token of the user, replacing any previous one
func (s *NotificationService) Subscribe(userID uint64, token, device string) (*models.PushSubscription, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrPushTokenRequired
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	sub := &models.PushSubscription{
		Token:        token,
		Device:       strings.TrimSpace(device),
		SubscribedAt: s.now().UTC(),
	}
	if err := s.userRepo.UpdatePushSubscription(userID, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

// Unsubscribe clears the user's push subscription
func (s *NotificationService) Unsubscribe(userID uint64) error {
	if err := s.userRepo.UpdatePushSubscription(userID, nil); err != nil {
		return fmt.Errorf("failed to clear subscription: %w", err)
	}
	return nil
}

// ListNotifications returns the user's notifications, newest first
func (s *NotificationService) ListNotifications(userID uint64, params utils.PaginationParams) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.ListByUser(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(userID, notificationID uint64) (*models.Notification, error) {
	n, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	if !n.Read {
		if err := s.notificationRepo.MarkRead(n.ID); err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
		n.Read = true
	}
	return n, nil
}
