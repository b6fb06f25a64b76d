package pujaRepo

import (
	"context"

	"panditseva/models"
)

// PujaRepository defines methods for catalog data access. The booking core
// only reads listings; writes happen through the admin surface.
type PujaRepository interface {
	// Create inserts a new catalog listing.
	Create(ctx context.Context, puja *models.Puja) error
	// GetByID retrieves a listing by its unique ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Puja, error)
	// GetAll retrieves the full catalog.
	GetAll(ctx context.Context) ([]models.Puja, error)
	// UpdateSet applies a $set document to a listing.
	UpdateSet(ctx context.Context, id string, doc map[string]interface{}) error
	// Delete removes a listing by its ID.
	Delete(ctx context.Context, id string) error
}
