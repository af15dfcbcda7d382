// Package errors classifies failures returned by the managed backend's
// function endpoints and auth service.
package errors

import (
	"errors"
	"net/http"
	"strings"
)

// Kind is the category of a remote failure.
type Kind int

const (
	// KindUnknown carries the remote message as-is.
	KindUnknown Kind = iota
	// KindUnauthenticated means the caller must sign in again.
	KindUnauthenticated
	// KindForbidden means the caller is signed in but not allowed.
	KindForbidden
	// KindEmailExists means the account email is already registered.
	KindEmailExists
	// KindNetwork is a transport failure or an unreadable response.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindEmailExists:
		return "email_exists"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// RemoteError is the error returned by every remote boundary client.
type RemoteError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// Classify maps a remote error message onto a Kind by substring.
// It is the only place where message text is inspected:
//   - contains "unauthenticated"          → KindUnauthenticated
//   - contains "forbidden"                → KindForbidden
//   - contains "email" and "exist"        → KindEmailExists
//   - anything else                       → KindUnknown
//
// Matching is case-insensitive.
func Classify(message string) Kind {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "unauthenticated"):
		return KindUnauthenticated
	case strings.Contains(msg, "forbidden"):
		return KindForbidden
	case strings.Contains(msg, "email") && strings.Contains(msg, "exist"):
		return KindEmailExists
	default:
		return KindUnknown
	}
}

// FromResponse builds a RemoteError from an HTTP status and message.
// The status decides when it is unambiguous; otherwise the message does.
func FromResponse(status int, message string) *RemoteError {
	kind := Classify(message)
	switch status {
	case http.StatusUnauthorized:
		kind = KindUnauthenticated
	case http.StatusForbidden:
		kind = KindForbidden
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &RemoteError{Kind: kind, Status: status, Message: message}
}

// Network wraps a transport failure.
func Network(err error) *RemoteError {
	return &RemoteError{Kind: KindNetwork, Message: err.Error()}
}

// KindOf returns the Kind of err, or KindUnknown when err is not remote.
func KindOf(err error) Kind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}
