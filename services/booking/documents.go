package booking

import (
	"time"

	"freightbook/config"
	"freightbook/models"
)

// buildDocumentSet materializes the configured required documents for a
// freshly confirmed booking, all pending on both axes.
func buildDocumentSet(now time.Time) []models.DocumentRecord {
	var docs []models.DocumentRecord
	for _, t := range config.RequiredUserDocuments() {
		docs = append(docs, models.DocumentRecord{
			Type:               t,
			Side:               models.DocumentSideUser,
			UploadStatus:       models.DocumentPending,
			VerificationStatus: models.DocumentPending,
			UpdatedAt:          now,
		})
	}
	for _, t := range config.RequiredProviderDocuments() {
		docs = append(docs, models.DocumentRecord{
			Type:               t,
			Side:               models.DocumentSideProvider,
			UploadStatus:       models.DocumentPending,
			VerificationStatus: models.DocumentPending,
			UpdatedAt:          now,
		})
	}
	return docs
}

// findDocument locates the record matching type and side, or nil.
func findDocument(docs []models.DocumentRecord, docType string, side models.DocumentSide) *models.DocumentRecord {
	for i := range docs {
		if docs[i].Type == docType && docs[i].Side == side {
			return &docs[i]
		}
	}
	return nil
}

// allDocumentsVerified reports whether every required record has cleared
// verification. An empty set never counts as verified.
func allDocumentsVerified(docs []models.DocumentRecord) bool {
	if len(docs) == 0 {
		return false
	}
	for _, d := range docs {
		if d.VerificationStatus != models.DocumentVerified {
			return false
		}
	}
	return true
}
