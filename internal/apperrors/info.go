package apperrors

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
)

// Info is the normalized view of any error reaching the response boundary.
type Info struct {
	Message    string
	Code       string
	StatusCode int
	Details    map[string]any
	Stack      string
}

// ExtractInfo normalizes the three error shapes that can reach the
// boundary: taxonomy errors, HTTP-shaped framework errors, and everything
// else. It never fails.
func ExtractInfo(err error) Info {
	var appErr *Error
	if errors.As(err, &appErr) {
		return Info{
			Message:    appErr.Message,
			Code:       appErr.Kind.Code(),
			StatusCode: appErr.StatusCode,
			Details:    appErr.Details,
			Stack:      string(debug.Stack()),
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := fmt.Sprintf("%v", httpErr.Message)
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return Info{
			Message:    msg,
			Code:       "HTTP_ERROR",
			StatusCode: httpErr.Code,
			Stack:      string(debug.Stack()),
		}
	}

	msg := "Internal server error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Info{
		Message:    msg,
		Code:       "UNKNOWN_ERROR",
		StatusCode: 500,
		Stack:      string(debug.Stack()),
	}
}

// ClientPayload is the error body returned to API clients.
type ClientPayload struct {
	StatusCode    int            `json:"statusCode"`
	Message       string         `json:"message"`
	Error         string         `json:"error"`
	Timestamp     string         `json:"timestamp"`
	CorrelationID string         `json:"correlationId,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	Stack         string         `json:"stack,omitempty"`
}

// SanitizeForClient builds the client-facing payload from extracted info.
// Details are passed through only for caller-correctable (4xx) errors or
// in development; server errors never expose internals to clients
// elsewhere. The stack requires both includeStack and development.
func SanitizeForClient(info Info, includeStack bool, environment string) ClientPayload {
	payload := ClientPayload{
		StatusCode: info.StatusCode,
		Message:    info.Message,
		Error:      info.Code,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	dev := environment == "development"
	if (info.StatusCode >= 400 && info.StatusCode < 500) || dev {
		payload.Details = info.Details
	}
	if includeStack && dev {
		payload.Stack = info.Stack
	}
	return payload
}

// IsRetryable reports whether retrying the failed operation could
// plausibly succeed: server-side (5xx) classifications and transient
// network failures. Advisory only; this layer never retries.
func IsRetryable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsNotFound || dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ETIMEDOUT:
			return true
		}
		return false
	}

	return ExtractInfo(err).StatusCode >= 500
}

// FriendlyMessage returns a user-safe phrasing for the error. The text
// never derives from details or stack.
func FriendlyMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind.FriendlyMessage()
	}
	return genericFriendlyMessage
}

// CorrelationID generates an opaque token linking a server log line to
// the error payload sent to the client. Time-prefixed so ids sort
// roughly by occurrence; the random suffix keeps collisions unlikely
// within a process lifetime. Not cryptographically unique.
func CorrelationID() string {
	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + hex.EncodeToString(suffix[:])
}
