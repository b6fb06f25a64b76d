// models/booking.go
package models

import "time"

// Booking lifecycle statuses. Forward-only except Cancelled, which is terminal
// from Pending or Accepted.
const (
	BookingStatusPending   = "Pending"
	BookingStatusAccepted  = "Accepted"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

// Payment statuses. An independent axis; the booking workflow never moves it.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// BookingDate is a calendar date without a timezone.
type BookingDate struct {
	Day   int `bson:"day" json:"day" binding:"required"`
	Month int `bson:"month" json:"month" binding:"required"`
	Year  int `bson:"year" json:"year" binding:"required"`
}

// BookingLocation captures the structured address of the ceremony.
type BookingLocation struct {
	Province     string `bson:"province" json:"province" binding:"required"`
	District     string `bson:"district" json:"district" binding:"required"`
	Municipality string `bson:"municipality" json:"municipality" binding:"required"`
	TollAddress  string `bson:"tollAddress" json:"tollAddress" binding:"required"`
}

// Booking is the durable record of a single service request.
//
// AcceptedPandits and SelectedPandits are disjoint at all times: selection
// moves a pandit from the former to the latter in a single conditional update.
type Booking struct {
	ID              string          `bson:"id" json:"id"`
	UserID          string          `bson:"userId" json:"userId"`
	PujaID          string          `bson:"pujaId" json:"pujaId"`
	Date            BookingDate     `bson:"date" json:"date"`
	Time            string          `bson:"time" json:"time"`
	Location        BookingLocation `bson:"location" json:"location"`
	AcceptedPandits []string        `bson:"acceptedPandits" json:"acceptedPandits"`
	SelectedPandits []string        `bson:"selectedPandits" json:"selectedPandits"`
	SelectionCount  int             `bson:"selectionCount" json:"selectionCount"`
	Status          string          `bson:"status" json:"status"`
	PaymentStatus   string          `bson:"paymentStatus" json:"paymentStatus"`
	Amount          float64         `bson:"amount" json:"amount"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput carries the requester-submitted fields for a new booking.
type BookingInput struct {
	Date     BookingDate     `json:"date" binding:"required"`
	Time     string          `json:"time" binding:"required"`
	Location BookingLocation `json:"location" binding:"required"`
}

// AcceptedPandit pairs a pandit profile with their KYP documents for the
// requester's candidate review.
type AcceptedPandit struct {
	Pandit    UserPublic `json:"pandit"`
	Documents []KYP      `json:"documents"`
}
