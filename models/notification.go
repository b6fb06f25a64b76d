// models/notification.go
package models

import "time"

// Notification types.
const (
	NotificationTypeBookingRequest      = "Booking Request"
	NotificationTypeBookingAcceptance   = "Booking Acceptance"
	NotificationTypeBookingCancellation = "Booking Cancellation"
	NotificationTypeBookingSelection    = "Booking Selection"
	NotificationTypePayment             = "Payment"
	NotificationTypeReminder            = "Reminder"
	NotificationTypeGeneral             = "General"
	NotificationTypeReview              = "Review"
)

// Notification statuses. For Booking Request notifications the status is the
// pandit's response and moves away from Pending at most once.
const (
	NotificationStatusPending  = "Pending"
	NotificationStatusSent     = "Sent"
	NotificationStatusFailed   = "Failed"
	NotificationStatusAccepted = "Accepted"
	NotificationStatusDeclined = "Declined"
)

// RelatedKind tags the entity a notification refers back to.
type RelatedKind string

const (
	RelatedNone    RelatedKind = ""
	RelatedBooking RelatedKind = "booking"
	RelatedReview  RelatedKind = "review"
)

// RelatedRef is a weak back-reference to the entity that caused a
// notification: relation plus lookup, never an ownership edge.
type RelatedRef struct {
	Kind RelatedKind `bson:"kind" json:"kind"`
	ID   string      `bson:"id" json:"id"`
}

// Notification is a durable record of a message to a user.
type Notification struct {
	ID         string     `bson:"id" json:"id"`
	SenderID   string     `bson:"senderId" json:"senderId"`
	ReceiverID string     `bson:"receiverId" json:"receiverId"`
	Message    string     `bson:"message" json:"message"`
	Type       string     `bson:"type" json:"type"`
	Related    RelatedRef `bson:"related" json:"related"`
	Status     string     `bson:"status" json:"status"`
	IsRead     bool       `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
}

// NotificationView is a notification enriched on read with its related
// entities and the sender's public profile. Enrichment is best-effort; fields
// stay nil when a lookup fails.
type NotificationView struct {
	Notification
	BookingDetails *Booking    `json:"bookingDetails,omitempty"`
	PujaDetails    *Puja       `json:"pujaDetails,omitempty"`
	ReviewDetails  *Review     `json:"reviewDetails,omitempty"`
	SenderDetails  *UserPublic `json:"senderDetails,omitempty"`
}
