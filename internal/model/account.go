package model

import "time"

// AccountType distinguishes ordinary buyers from verified merchants.
type AccountType string

const (
	AccountStandard AccountType = "standard"
	AccountMerchant AccountType = "merchant"
)

// VerificationStatus tracks an account's KYC application lifecycle.
// Verified and rejected are terminal for a given application.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// AccountStatus is the moderation state of an account. Banned is terminal;
// there is no un-ban operation.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusBanned    AccountStatus = "banned"
)

// Account is a marketplace user or merchant applicant as stored in the
// backend's accounts table. Durable state lives in the backend; this struct
// is an ephemeral fetched copy.
type Account struct {
	ID                 string             `json:"id" db:"id"`
	Email              string             `json:"email" db:"email"`
	FullName           string             `json:"full_name" db:"full_name"`
	City               string             `json:"city" db:"city"`
	AccountType        AccountType        `json:"account_type" db:"account_type"`
	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	RejectionReason    *string            `json:"rejection_reason,omitempty" db:"rejection_reason"`
	NNINumber          string             `json:"nni_number" db:"nni_number"`
	IDDocumentPath     *string            `json:"id_document_path,omitempty" db:"id_document_path"`
	AvatarURL          string             `json:"avatar_url" db:"avatar_url"`
	Status             AccountStatus      `json:"status" db:"status"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
}

// HasDocument reports whether the account has submitted an identity document.
func (a *Account) HasDocument() bool {
	return a.IDDocumentPath != nil && *a.IDDocumentPath != ""
}
