// models/puja.go
package models

import "time"

// Puja categories available in the catalog.
const (
	PujaCategoryAstrology = "Astrology"
	PujaCategoryPuja      = "Puja"
	PujaCategoryHomam     = "Homam"
	PujaCategoryVastu     = "Vastu"
	PujaCategoryOthers    = "Others"
)

// Puja is a service listing in the catalog, managed by admins.
type Puja struct {
	ID          string    `bson:"id" json:"id"`
	AdminID     string    `bson:"adminId" json:"adminId"`
	Name        string    `bson:"name" json:"name"`
	Image       string    `bson:"image" json:"image"`
	BaseFare    float64   `bson:"baseFare" json:"baseFare"`
	Category    string    `bson:"category" json:"category"`
	Duration    int       `bson:"duration" json:"duration"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PujaInput carries admin-submitted catalog fields.
type PujaInput struct {
	Name        string  `json:"name" binding:"required"`
	Image       string  `json:"image"`
	BaseFare    float64 `json:"baseFare" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Duration    int     `json:"duration" binding:"required"`
	Description string  `json:"description"`
}

// ValidCategory reports whether c is one of the catalog categories.
func ValidCategory(c string) bool {
	switch c {
	case PujaCategoryAstrology, PujaCategoryPuja, PujaCategoryHomam, PujaCategoryVastu, PujaCategoryOthers:
		return true
	}
	return false
}
