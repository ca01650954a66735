package handlers

import (
	"smarthealth/internal/core/services"
	"smarthealth/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notifier *services.NotifierService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier *services.NotifierService) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
	}
}

// ListNotifications returns a patient's recent notifications
// @Summary List notifications
// @Description Most recent notifications for a patient, capped at 50
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param patient_id query int true "Patient ID"
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	patientID := uint(c.QueryInt("patient_id", 0))
	limit := c.QueryInt("limit", 50)

	notifications, err := h.notifier.ListForPatient(c.Context(), patientID, limit)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list notifications")
	}
	return response.Success(c, "Notifications retrieved", notifications)
}
