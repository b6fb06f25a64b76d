package handlers

import (
	"net/http"

	"panditseva/models"
	booking "panditseva/services/booking"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking workflow endpoints.
type BookingHandler struct {
	Service booking.WorkflowService
}

// Create opens a new booking for a puja and fans out requests to pandits.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rec, err := h.Service.CreateBooking(c.Request.Context(), userID, c.Param("pujaId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Mine lists the caller's bookings as a requester.
func (h *BookingHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	bookings, total, err := h.Service.UserBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": total, "page": page})
}

// Assigned lists bookings the caller was selected for as a pandit.
func (h *BookingHandler) Assigned(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	bookings, total, err := h.Service.PanditBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": total, "page": page})
}

// AcceptedPandits lists the pandits who accepted the booking, with documents.
func (h *BookingHandler) AcceptedPandits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	candidates, err := h.Service.AcceptedPandits(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acceptedPandits": candidates})
}

// candidateInput names a pandit within a booking's candidate set.
type candidateInput struct {
	BookingID string `json:"bookingId" binding:"required"`
	PanditID  string `json:"panditId" binding:"required"`
}

// SelectPandit confirms one of the accepted pandits.
func (h *BookingHandler) SelectPandit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input candidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Service.SelectPandit(c.Request.Context(), userID, input.BookingID, input.PanditID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pandit selected"})
}

// RejectPandit drops an accepted pandit from the candidate set.
func (h *BookingHandler) RejectPandit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input candidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Service.RejectAcceptedPandit(c.Request.Context(), userID, input.BookingID, input.PanditID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pandit rejected"})
}

// Complete marks the booking completed.
func (h *BookingHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rec, err := h.Service.CompleteBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Cancel terminally cancels the booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rec, err := h.Service.CancelBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
