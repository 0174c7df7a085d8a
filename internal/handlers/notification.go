package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Subscribe registers the device token used for reminder pushes
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Token  string `json:"token" binding:"required"`
		Device string `json:"device"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	sub, err := h.notificationService.Subscribe(userID, req.Token, req.Device)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Subscribed to push notifications", sub)
}

func (h *NotificationHandler) Unsubscribe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.Unsubscribe(userID); err != nil {
		respondNotificationError(c, err)
		return
	}

	respond(c, http.StatusOK, "Unsubscribed from push notifications", nil)
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.ListNotifications(userID, params)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Notifications fetched successfully", notifications, params, total)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "notification ID")
	if !ok {
		return
	}

	n, err := h.notificationService.MarkRead(userID, id)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	respond(c, http.StatusOK, "Notification marked as read", n)
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, "Notification not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrPushTokenRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "", err)
	}
}
