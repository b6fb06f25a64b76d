package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"panditseva/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the JSON error envelope.
// Unrecognized errors map to 503 without leaking internals.
func respondError(c *gin.Context, err error) {
	kind := utils.KindOf(err)

	message := "service temporarily unavailable"
	var svcErr *utils.ServiceError
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	c.JSON(kind.HTTPStatus(), utils.ErrorResponse{
		Kind:    string(kind),
		Message: message,
	})
}

// currentUserID reads the authenticated user ID set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized"})
		return "", false
	}
	return id, true
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
