package fieldservice

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	perr "laborreport/internal/platform/errors"
)

// ErrRetriesExhausted marks a request that kept failing after every allowed retry
var ErrRetriesExhausted = errors.New("retries exhausted")

// StatusError wraps a non-200 response
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// statusError captures the status and a short tail of the body for diagnostics
func statusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func exhausted(attempts int, last error) error {
	return perr.Wrapf(fmt.Errorf("%w: %w", ErrRetriesExhausted, last), perr.ErrorCodeUnavailable,
		"fieldservice gave up after %d attempts", attempts)
}

// IsRetriesExhausted reports whether err came from a request that used up its retries
func IsRetriesExhausted(err error) bool { return errors.Is(err, ErrRetriesExhausted) }

// IsUnauthorized reports whether the API rejected the credential
func IsUnauthorized(err error) bool { return perr.IsCode(err, perr.ErrorCodeUnauthorized) }

// StatusOf returns the HTTP status behind err, or 0
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// atoiLoose parses an integer that may be encoded as a JSON number, a float or a quoted string
func atoiLoose(raw []byte) (int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
