package models

import "time"

// ConsentRecord is the durable compliance record of what a signer accepted
// and when. Inserted once per completed onboarding; never updated.
type ConsentRecord struct {
	ID                     string    `bson:"id" json:"id"`
	Email                  string    `bson:"email" json:"email"`
	FullName               string    `bson:"fullName" json:"fullName"`
	TermsAccepted          bool      `bson:"termsAccepted" json:"termsAccepted"`
	PrivacyAccepted        bool      `bson:"privacyAccepted" json:"privacyAccepted"`
	DataProcessingAccepted bool      `bson:"dataProcessingAccepted" json:"dataProcessingAccepted"`
	MarketingOptIn         bool      `bson:"marketingOptIn" json:"marketingOptIn"`
	AcceptedAt             time.Time `bson:"acceptedAt" json:"acceptedAt"`
}
