package promptsmith

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the purpose of choosing a message.
// Kinds never change control flow: every failure ends the current action.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindLocalValidation
	KindNetworkFailure
	KindAuthFailure
	KindRateLimited
	KindBadRequest
	KindEmptyReply
	KindMalformedReply
	KindUnknownServerError
)

var kindNames = [...]string{
	KindNone:               "none",
	KindLocalValidation:    "local_validation",
	KindNetworkFailure:     "network_failure",
	KindAuthFailure:        "auth_failure",
	KindRateLimited:        "rate_limited",
	KindBadRequest:         "bad_request",
	KindEmptyReply:         "empty_reply",
	KindMalformedReply:     "malformed_reply",
	KindUnknownServerError: "unknown_server_error",
}

// String returns the snake_case name of the kind.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is a classified pipeline failure. Error() returns the message shown
// to the user.
type Error struct {
	Kind   ErrorKind
	Status int    // HTTP status for server-classified kinds, 0 otherwise.
	Detail string // Server-provided message or local reason; may be empty.
	Err    error  // Underlying cause, if any.
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindLocalValidation:
		if e.Detail != "" {
			return e.Detail
		}
		return "Please select a position and describe your task."
	case KindNetworkFailure:
		return "Network error. Please check your internet connection."
	case KindBadRequest:
		return "Invalid request. Please check your API key and try again." + e.detailSuffix()
	case KindAuthFailure:
		return "API key is invalid or does not have access. Please double-check you copied the full key from aistudio.google.com/apikey." + e.detailSuffix()
	case KindRateLimited:
		return "Rate limit reached. Google's free tier has per-minute and per-day limits. Please wait a minute and try again, or try again tomorrow if the daily limit was reached." + e.detailSuffix()
	case KindEmptyReply:
		return "Received an empty response. Please try again."
	case KindMalformedReply:
		return "Received an unexpected response format. Please try again."
	default:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("API error: %d", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) detailSuffix() string {
	if e.Detail == "" {
		return ""
	}
	return " (" + e.Detail + ")"
}

// Local validation failures, raised before any network call.
var (
	ErrNoCredential = &Error{Kind: KindLocalValidation, Detail: "Please enter your Google Gemini API key before generating."}
	ErrMissingInput = &Error{Kind: KindLocalValidation, Detail: "Please select a position and describe your task."}
)

// ErrInvalidConfig indicates a configuration value failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// KindOf returns the kind of the first *Error in err's chain, or KindNone.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// ErrorMessage returns the user-facing message for err. Classified errors
// yield their own message even when wrapped; anything else falls back to
// err.Error().
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
