package handlers

import (
	"net/http"
	"time"

	pujaRepo "panditseva/database/repository/puja"
	"panditseva/models"
	"panditseva/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PujaHandler exposes the catalog: public reads plus admin-only writes. The
// catalog has no workflow of its own, so the handler talks to the repository
// directly.
type PujaHandler struct {
	Repo pujaRepo.PujaRepository
}

// List returns the full catalog.
func (h *PujaHandler) List(c *gin.Context) {
	pujas, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, utils.UnavailableError("failed to list pujas", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pujas": pujas})
}

// Get returns one catalog listing.
func (h *PujaHandler) Get(c *gin.Context) {
	rec, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, utils.UnavailableError("failed to fetch puja", err))
		return
	}
	if rec == nil {
		respondError(c, utils.NotFoundError("puja not found"))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Create adds a catalog listing. Admin only.
func (h *PujaHandler) Create(c *gin.Context) {
	var input models.PujaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !models.ValidCategory(input.Category) {
		respondError(c, utils.ValidationError("unknown puja category"))
		return
	}

	now := time.Now()
	rec := &models.Puja{
		ID:          uuid.New().String(),
		AdminID:     c.GetString("adminID"),
		Name:        input.Name,
		Image:       input.Image,
		BaseFare:    input.BaseFare,
		Category:    input.Category,
		Duration:    input.Duration,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Repo.Create(c.Request.Context(), rec); err != nil {
		respondError(c, utils.UnavailableError("failed to create puja", err))
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Update applies admin edits to a listing.
func (h *PujaHandler) Update(c *gin.Context) {
	var input models.PujaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !models.ValidCategory(input.Category) {
		respondError(c, utils.ValidationError("unknown puja category"))
		return
	}

	id := c.Param("id")
	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, utils.UnavailableError("failed to fetch puja", err))
		return
	}
	if existing == nil {
		respondError(c, utils.NotFoundError("puja not found"))
		return
	}

	doc := map[string]interface{}{
		"name":        input.Name,
		"image":       input.Image,
		"baseFare":    input.BaseFare,
		"category":    input.Category,
		"duration":    input.Duration,
		"description": input.Description,
		"updatedAt":   time.Now(),
	}
	if err := h.Repo.UpdateSet(c.Request.Context(), id, doc); err != nil {
		respondError(c, utils.UnavailableError("failed to update puja", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "puja updated"})
}

// Delete removes a listing.
func (h *PujaHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, utils.UnavailableError("failed to delete puja", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "puja deleted"})
}
