// Package services defines the business logic for wireframe generations,
// user credit accounting, and prompt enhancement. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Generation-related errors.
var (
	// ErrRecordNotFound indicates that the requested generation record does
	// not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUserNotFound indicates that the referenced user account does not
	// exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientCredits is returned when a generation is requested by a
	// user whose credit balance is exhausted.
	ErrInsufficientCredits = errors.New("not enough credits")

	// ErrMissingUID is returned when a request omits the record uid.
	ErrMissingUID = errors.New("uid is required")

	// ErrEmptyDescription is returned when a generation request carries no
	// description text.
	ErrEmptyDescription = errors.New("description is empty")

	// ErrMissingEmail is returned when a request omits the owner email.
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingImage is returned when a generation request carries neither
	// an image URL nor inline image data.
	ErrMissingImage = errors.New("image is required")

	// ErrInvalidModel is returned when the requested model is not in the
	// supported registry.
	ErrInvalidModel = errors.New("model not supported")

	// ErrImageTooLarge is returned when an uploaded image exceeds the
	// configured size ceiling.
	ErrImageTooLarge = errors.New("image size too large")

	// ErrInferenceFailed wraps upstream model failures during the
	// generation gate.
	ErrInferenceFailed = errors.New("ai processing failed")

	// ErrUploadFailed wraps object-store failures during upload or delete.
	ErrUploadFailed = errors.New("image storage failed")
)

// Enhancement-related errors.
var (
	// ErrPromptTooShort is returned when the prompt is below the minimum
	// character count.
	ErrPromptTooShort = errors.New("prompt too short")

	// ErrPromptTooLong is returned when the prompt exceeds the maximum
	// character count.
	ErrPromptTooLong = errors.New("prompt too long")
)
