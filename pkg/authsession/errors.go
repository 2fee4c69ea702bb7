package authsession

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected matches an *AuthError of KindRejected.
	ErrRejected = errors.New("authsession.rejected")
	// ErrTransport matches an *AuthError of KindTransport.
	ErrTransport = errors.New("authsession.transport")

	ErrNoManager = errors.New("authsession.no_manager_in_context")
)

// Kind classifies an authentication failure.
type Kind int

const (
	// KindRejected: the server answered and refused, or answered success
	// without a usable token and user.
	KindRejected Kind = iota + 1
	// KindTransport: no response, or a response that was not JSON.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// AuthError is returned by Login and Signup.
type AuthError struct {
	Op      string // "login" or "signup"
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	Err     error
}

// Error returns the user-facing message only.
func (e *AuthError) Error() string {
	if e == nil {
		return "authentication failed"
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool {
	switch target {
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}
