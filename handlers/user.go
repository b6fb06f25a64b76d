package handlers

import (
	"net/http"

	"panditseva/models"
	user "panditseva/services/user"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes registration, authentication and profile endpoints.
type UserHandler struct {
	Service user.UserService
}

// Register starts a registration session and mails an OTP.
func (h *UserHandler) Register(c *gin.Context) {
	var input models.UserRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionID, err := h.Service.InitiateRegistration(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"sessionId": sessionID,
		"message":   "verification code sent",
	})
}

// VerifyOTP completes registration and signs the new user in.
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
		OTP       string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.VerifyRegistrationOTP(c.Request.Context(), input.SessionID, input.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates with email and password.
func (h *UserHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the caller's session token.
func (h *UserHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Service.SignOut(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Me returns the caller's public profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.Service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUser returns a user's public profile by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListPandits returns all pandit profiles.
func (h *UserHandler) ListPandits(c *gin.Context) {
	pandits, err := h.Service.ListPandits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandits": pandits})
}
