package models

import "time"

// DocumentSide distinguishes who must supply a document.
type DocumentSide string

const (
	DocumentSideUser     DocumentSide = "user"
	DocumentSideProvider DocumentSide = "provider"
)

// Upload / verification statuses for a DocumentRecord.
const (
	DocumentPending  = "pending"
	DocumentUploaded = "uploaded"
	DocumentVerified = "verified"
	DocumentRejected = "rejected"
)

// DocumentRecord tracks one required document type for a confirmed booking.
type DocumentRecord struct {
	Type               string       `json:"type" bson:"type"`
	Side               DocumentSide `json:"side" bson:"side"`
	RecordID           string       `json:"recordId,omitempty" bson:"recordId,omitempty"`
	UploadStatus       string       `json:"uploadStatus" bson:"uploadStatus"`
	VerificationStatus string       `json:"verificationStatus" bson:"verificationStatus"`
	VerifierNotes      string       `json:"verifierNotes,omitempty" bson:"verifierNotes,omitempty"`
	UpdatedAt          time.Time    `json:"updatedAt" bson:"updatedAt"`
}
