// models/kyp.go
package models

import "time"

// KYP is a pandit's uploaded credential document. Verification review happens
// outside this service; the record only stores the upload.
type KYP struct {
	ID           string    `bson:"id" json:"id"`
	PanditID     string    `bson:"panditId" json:"panditId"`
	DocumentType string    `bson:"documentType" json:"documentType"`
	DocumentID   string    `bson:"documentId" json:"documentId"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
