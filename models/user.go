// models/user.go
package models

import "time"

// User represents a platform user. Pandits are users with IsPandit set.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	IsPandit     bool      `bson:"isPandit" json:"isPandit"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile strips credentials for embedding in API payloads.
func (u *User) PublicProfile() UserPublic {
	return UserPublic{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		IsPandit:    u.IsPandit,
	}
}

// UserPublic is the credential-free view of a user.
type UserPublic struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	IsPandit    bool   `json:"isPandit"`
}

// UserRegistrationInput carries the fields submitted at registration.
type UserRegistrationInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=8"`
	IsPandit    bool   `json:"isPandit"`
}
