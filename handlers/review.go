package handlers

import (
	"net/http"
	"strconv"

	"panditseva/models"
	review "panditseva/services/review"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes rating endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// Create records the caller's review of a pandit for a completed booking.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rec, err := h.Service.AddReview(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ByPandit lists a pandit's reviews with the rating summary.
func (h *ReviewHandler) ByPandit(c *gin.Context) {
	panditID := c.Param("panditId")
	page, limit := pagination(c)

	reviews, total, err := h.Service.PanditReviews(c.Request.Context(), panditID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.Service.AverageRating(c.Request.Context(), panditID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   total,
		"page":    page,
		"summary": summary,
	})
}

// Average returns a pandit's rating summary.
func (h *ReviewHandler) Average(c *gin.Context) {
	summary, err := h.Service.AverageRating(c.Request.Context(), c.Param("panditId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TopPandits ranks pandits by rating.
func (h *ReviewHandler) TopPandits(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))

	ranked, err := h.Service.TopPandits(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandits": ranked})
}
