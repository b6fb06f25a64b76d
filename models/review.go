// models/review.go
package models

import "time"

// Review is a requester's rating of a pandit for a completed booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	PanditID   string    `bson:"panditId" json:"panditId"`
	PujaID     string    `bson:"pujaId" json:"pujaId"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	Rating     int       `bson:"rating" json:"rating"`
	ReviewText string    `bson:"reviewText,omitempty" json:"reviewText,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewInput carries the requester-submitted review fields.
type ReviewInput struct {
	PanditID   string `json:"panditId" binding:"required"`
	PujaID     string `json:"pujaId" binding:"required"`
	BookingID  string `json:"bookingId" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	ReviewText string `json:"reviewText"`
}

// RatingSummary aggregates a pandit's reviews. Zero reviews yields {0, 0}.
type RatingSummary struct {
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalReviews  int64   `bson:"totalReviews" json:"totalReviews"`
}

// PanditRating is one row of the top-provider ranking.
type PanditRating struct {
	PanditID      string  `bson:"_id" json:"panditId"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalReviews  int64   `bson:"totalReviews" json:"totalReviews"`
}
