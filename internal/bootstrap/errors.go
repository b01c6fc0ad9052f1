package bootstrap

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a bootstrap run stopped
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindTransientSchema
	KindProvisioningTimeout
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTransientSchema:
		return "transient_schema_error"
	case KindProvisioningTimeout:
		return "provisioning_timeout"
	case KindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown_backend_error"
	}
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrUnauthenticated     = &Error{Kind: KindUnauthenticated}
	ErrTransientSchema     = &Error{Kind: KindTransientSchema}
	ErrProvisioningTimeout = &Error{Kind: KindProvisioningTimeout}
	ErrPermissionDenied    = &Error{Kind: KindPermissionDenied}
	ErrUnknownBackend      = &Error{Kind: KindUnknown}
)

// Error is the terminal error of a failed bootstrap run
type Error struct {
	Kind Kind
	// Op is the step that failed: "session", "provision" or "link".
	Op string
	// Code and Message are the last backend error observed, if any.
	Code     string
	Message  string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" during ")
		b.WriteString(e.Op)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " (code %s)", e.Code)
	}
	if e.Attempts > 0 {
		fmt.Fprintf(&b, " after %d attempt(s)", e.Attempts)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

const noSessionMessage = "no authenticated session"

// OperatorMessage renders err the way it is shown to the person running
// bootstrap: the backend message when one exists, the kind otherwise.
func OperatorMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindUnauthenticated:
		// Auth provider failures are shown as reported.
		if e.Message != "" && e.Message != noSessionMessage {
			return e.Message
		}
		return noSessionMessage + "; sign in and try again"
	case KindProvisioningTimeout:
		msg := fmt.Sprintf("database did not become ready after %d attempts", e.Attempts)
		if e.Message != "" {
			msg += ": " + e.Message
		}
		return msg
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}
