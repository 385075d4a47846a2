package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// TransportError wraps a network-level fetch failure. Retried up to the
// policy limit; fatal to the job when the final attempt exhausts it.
type TransportError struct {
	Err        error
	StatusCode int
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps an error as a transport failure with an optional
// HTTP status code.
func NewTransportError(err error, statusCode int) *TransportError {
	return &TransportError{Err: err, StatusCode: statusCode}
}

// MarkupError wraps a parser failure on structurally unexpected content.
// Retried; on exhaustion the job is abandoned rather than partially
// populated.
type MarkupError struct {
	Err error
}

func (e *MarkupError) Error() string {
	return e.Err.Error()
}

func (e *MarkupError) Unwrap() error {
	return e.Err
}

// NewMarkupError wraps an error as a markup failure.
func NewMarkupError(err error) *MarkupError {
	return &MarkupError{Err: err}
}

// ErrEmptyResult signals that a parse succeeded but produced zero records.
// Retried identically to the failure cases, since the policy cannot tell
// broken markup masquerading as empty from a genuinely empty page, but
// accepted as a valid final state once attempts are exhausted.
var ErrEmptyResult = errors.New("resilience: page yielded no records")

// IsEmpty reports whether err is the empty-result condition.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsMarkup reports whether err carries a MarkupError.
func IsMarkup(err error) bool {
	var me *MarkupError
	return errors.As(err, &me)
}

// IsRetryable reports whether the error belongs to the retryable taxonomy:
// transport failures, markup failures, empty results, or common transient
// network conditions surfacing from wrapped HTTP clients.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	if IsMarkup(err) || IsEmpty(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
