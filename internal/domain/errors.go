package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// ErrorKind is the closed set of failure classes a platform publish can end in.
// Every expected failure carries exactly one of these so callers can react
// without parsing message text.
type ErrorKind string

const (
	ErrorNetwork             ErrorKind = "networkError"
	ErrorAuthentication      ErrorKind = "authenticationError"
	ErrorRateLimit           ErrorKind = "rateLimitError"
	ErrorContentTooLong      ErrorKind = "contentTooLong"
	ErrorPlatformUnavailable ErrorKind = "platformUnavailable"
	ErrorInvalidCredentials  ErrorKind = "invalidCredentials"
	ErrorServer              ErrorKind = "serverError"
	ErrorUnknown             ErrorKind = "unknownError"
)

// PlatformError is a classified failure produced at the throw site.
type PlatformError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PlatformError) Unwrap() error { return e.Err }

// NewPlatformError builds a classified error with a formatted message.
func NewPlatformError(kind ErrorKind, format string, args ...any) *PlatformError {
	return &PlatformError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapPlatformError classifies an underlying error without losing it.
func WrapPlatformError(kind ErrorKind, err error, message string) *PlatformError {
	return &PlatformError{Kind: kind, Message: message, Err: err}
}

// Classify maps an arbitrary error to an ErrorKind. Typed errors win; the
// text-matching branch exists only for opaque errors from third-party code.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorUnknown
	}

	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Kind
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrorNetwork
	}

	// Last-resort heuristic for errors we do not own.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many requests"):
		return ErrorRateLimit
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "forbidden"),
		strings.Contains(msg, "invalid token"), strings.Contains(msg, "authentication"):
		return ErrorAuthentication
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"),
		strings.Contains(msg, "broken pipe"), strings.Contains(msg, "connection reset"):
		return ErrorNetwork
	case strings.Contains(msg, "internal server error"), strings.Contains(msg, "bad gateway"),
		strings.Contains(msg, "service unavailable"):
		return ErrorServer
	default:
		return ErrorUnknown
	}
}
