package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	kypRepo "panditseva/database/repository/kyp"
	userRepo "panditseva/database/repository/user"
	"panditseva/models"
	"panditseva/services/storage"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const kypUploadFolder = "kyp"

// KYPHandler handles pandit credential document uploads.
type KYPHandler struct {
	Storage storage.StorageService
	Repo    kypRepo.KYPRepository
	Users   userRepo.UserRepository
}

// Upload receives a multipart document, stores it and records the reference.
// Only pandits can upload.
func (h *KYPHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rec, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, utils.UnavailableError("failed to fetch user", err))
		return
	}
	if rec == nil || !rec.IsPandit {
		respondError(c, utils.ForbiddenError("only pandits can upload credential documents"))
		return
	}

	documentType := c.PostForm("documentType")
	if documentType == "" {
		respondError(c, utils.ValidationError("documentType is required"))
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		respondError(c, utils.ValidationError("document file is required"))
		return
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		respondError(c, utils.UnavailableError("failed to receive document", err))
		return
	}
	defer os.Remove(tempPath)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tempPath, kypUploadFolder)
	if err != nil {
		respondError(c, utils.UnavailableError("failed to store document", err))
		return
	}

	doc := &models.KYP{
		ID:           uuid.New().String(),
		PanditID:     userID,
		DocumentType: documentType,
		DocumentID:   publicID,
		CreatedAt:    time.Now(),
	}
	if err := h.Repo.Create(c.Request.Context(), doc); err != nil {
		respondError(c, utils.UnavailableError("failed to record document", err))
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// Mine lists the caller's uploaded documents.
func (h *KYPHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	docs, err := h.Repo.ListByPandit(c.Request.Context(), userID)
	if err != nil {
		respondError(c, utils.UnavailableError("failed to list documents", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}
