package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/admin-console/internal/core/ports"
)

// NotificationHandler serves the recent transient notifications.
type NotificationHandler struct {
	notifier ports.Notifier
}

func NewNotificationHandler(notifier ports.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// List handles GET /v1/notifications, newest first.
//
// @Summary      List recent notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notificationsResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	entries, err := h.notifier.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []ports.Notification{}
	}
	return c.JSON(http.StatusOK, notificationsResponse{Data: entries})
}
