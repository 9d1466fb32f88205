package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	go_json "github.com/goccy/go-json"
)

const (
	retcodeInvalidCookies = -100
	retcodeNotLoggedIn    = 10001
	retcodeDataNotPublic  = 10102
	retcodeAccountMissing = 1009
)

// APIError is a non-zero retcode or an HTTP error status. StatusCode is
// zero when the request itself succeeded.
type APIError struct {
	StatusCode int
	Retcode    int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hoyolab api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hoyolab api: [%d] %s", e.Retcode, e.Message)
}

func AsAPIError(err error) *APIError {
	var e *APIError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsInvalidCookies reports whether the cookies were rejected or expired.
func IsInvalidCookies(err error) bool {
	e := AsAPIError(err)
	if e == nil {
		return false
	}
	return e.Retcode == retcodeInvalidCookies || e.Retcode == retcodeNotLoggedIn ||
		e.StatusCode == http.StatusUnauthorized
}

func IsDataNotPublic(err error) bool {
	e := AsAPIError(err)
	return e != nil && e.Retcode == retcodeDataNotPublic
}

func IsAccountNotFound(err error) bool {
	e := AsAPIError(err)
	return e != nil && e.Retcode == retcodeAccountMissing
}

func parseHTTPError(resp *http.Response, logger *slog.Logger) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var env envelope
	if err := go_json.Unmarshal(body, &env); err != nil || env.Message == "" {
		logger.Debug("hoyolab error response", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		msg := snippet(body)
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &APIError{StatusCode: resp.StatusCode, Retcode: env.Retcode, Message: env.Message}
}

const maxSnippet = 80

// snippet shortens a response body to one line fit for an error message.
func snippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) <= maxSnippet {
		return s
	}
	return s[:maxSnippet] + "..."
}
