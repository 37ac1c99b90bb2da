package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is an internal service error at handler level.
// If an error maps to a different status code use ErrorWithStatusCode.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Fixed-message failures. Package-level values so callers can identify them
// with errors.Is even after wrapping.
var (
	// Posting a reply whose parent message is missing or belongs to
	// another topic. The post is rejected outright.
	InvalidReplyTarget = &ErrorWithStatusCode{Message: "Invalid reply target", StatusCode: http.StatusBadRequest}

	// The acting user lacks the moderator or super-user rights the
	// operation requires.
	InsufficientPrivilege = &ErrorWithStatusCode{Message: "Insufficient privilege", StatusCode: http.StatusForbidden}

	// Deleting a user whose moderator flag is still set. The flag must be
	// revoked first.
	ProtectedAccount = &ErrorWithStatusCode{Message: "Account is protected, revoke moderator rights first", StatusCode: http.StatusConflict}

	// Lost a row-level race against a concurrent mutation. Safe to retry.
	ConflictRetry = &ErrorWithStatusCode{Message: "Concurrent modification, retry", StatusCode: http.StatusConflict}

	// Blob write or reference commit failed. The enclosing mutation
	// must be aborted so no record points at an unwritten blob.
	AssetWriteFailure = &ErrorWithStatusCode{Message: "Failed to store image", StatusCode: http.StatusInternalServerError}

	// Geocode / static-map provider did not answer usefully. Absorbed by
	// the location pipeline, never surfaced to the caller.
	ExternalServiceUnavailable = errors.New("external service unavailable")
)

// NotFound builds a 404 for an absent entity ("Topic", "Message", "User").
func NotFound(what string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: fmt.Sprintf("%s not found", what), StatusCode: http.StatusNotFound}
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode extracts the HTTP status of err, defaulting to 500.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
