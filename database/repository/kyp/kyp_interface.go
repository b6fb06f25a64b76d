package kypRepo

import (
	"context"

	"panditseva/models"
)

// KYPRepository defines data access for uploaded credential documents.
type KYPRepository interface {
	// Create inserts a new document record.
	Create(ctx context.Context, kyp *models.KYP) error
	// ListByPandit returns all documents uploaded by the pandit.
	ListByPandit(ctx context.Context, panditID string) ([]models.KYP, error)
}
