package service

import "errors"

// Error taxonomy shared by the workflow services. Handlers map these to HTTP
// status codes; validation errors are raised before any backend call.
var (
	// ErrInvalidCredentials is returned when the identity provider rejects
	// the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthorized is returned when the identity authenticated but holds
	// no administrative role.
	ErrNotAuthorized = errors.New("not an administrator")

	// ErrValidation is returned for input rejected locally,
	// e.g. an empty rejection reason.
	ErrValidation = errors.New("validation failed")

	// ErrUpdateFailed is returned when the backend rejects a mutation; the
	// affected item stays in its pending set.
	ErrUpdateFailed = errors.New("backend update failed")

	// ErrNotFound is returned when a referenced account, listing, or report
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDecisionInFlight is returned when a second decision is submitted
	// for an item whose first decision has not resolved yet.
	ErrDecisionInFlight = errors.New("decision already in flight")

	// ErrDocumentUnavailable is returned when an identity document cannot be
	// opened: no submitted reference, or the signing request failed.
	ErrDocumentUnavailable = errors.New("document unavailable")
)
