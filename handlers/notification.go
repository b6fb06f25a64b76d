package handlers

import (
	"net/http"

	booking "panditseva/services/booking"
	notification "panditseva/services/notification"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the notification inbox. Accept/reject of booking
// requests route through the workflow engine so the booking record and the
// notification stay consistent.
type NotificationHandler struct {
	Service  notification.NotificationService
	Workflow booking.WorkflowService
}

// List returns the caller's notifications, newest first, enriched.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	views, total, err := h.Service.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": views, "total": total, "page": page})
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.Service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}

// Accept records the caller's acceptance of a booking request.
func (h *NotificationHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	n, err := h.Workflow.AcceptRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// Reject records the caller's refusal of a booking request.
func (h *NotificationHandler) Reject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	n, err := h.Workflow.DeclineRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
