// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses via the `fail()` helper. These codes give clients a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly
//     noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (e.g., insufficient_credits, ai_processing_failed)
//     are reserved for business failures a status code alone cannot convey.

package handlers

const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeNotFound        = "not_found"
	ErrCodePayloadTooLarge = "payload_too_large"
	ErrCodeRateLimited     = "too_many_requests"
	ErrCodeInternal        = "internal_error"

	// Domain-specific:
	ErrCodeInsufficientCredits = "insufficient_credits"
	ErrCodeAIProcessingFailed  = "ai_processing_failed"
	ErrCodeUploadFailed        = "upload_failed"
	ErrCodeDeleteFailed        = "delete_failed"
	ErrCodeEnhanceFailed       = "enhance_failed"
	ErrCodeMethodNotAllowed    = "method_not_allowed"
)
