package domain

import "errors"

var (
	// ErrQuotaExceeded indicates the user already owns the maximum number of
	// active planned scenarios.
	ErrQuotaExceeded = errors.New("planned scenario quota exceeded")

	// ErrForbidden indicates the actor lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState indicates the operation is not valid for the
	// scenario's current lifecycle state.
	ErrInvalidState = errors.New("invalid scenario state")

	// ErrAlreadyPublished guards against publishing twice.
	ErrAlreadyPublished = errors.New("scenario already published")

	// ErrNotFound indicates a referenced scenario or entity is missing or inactive.
	ErrNotFound = errors.New("not found")

	// ErrInvalid indicates a malformed request value.
	ErrInvalid = errors.New("invalid input")

	// ErrUnmappedReference indicates a clone met a required reference whose
	// target was not copied into the destination scenario.
	ErrUnmappedReference = errors.New("unmapped reference")
)
