package consentRepo

import (
	"voltpath/models"
)

// ConsentRepository defines methods for consent data access. Consent records
// are append-only.
type ConsentRepository interface {
	// Insert stores a new consent record.
	Insert(record *models.ConsentRecord) error
}
