package providers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

var (
	// ErrInvalidURL marks a request URL that cannot be used.
	ErrInvalidURL = errors.New("invalid request url")
	// ErrEmptyBody marks a 200 response without content.
	ErrEmptyBody = errors.New("empty response body")
)

// StatusError is returned when the endpoint answers with anything but 200.
type StatusError struct {
	Code    int
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d body: %s", e.Code, e.Snippet)
}

// Temporary reports whether the status is worth trying again later.
func (e *StatusError) Temporary() bool {
	switch {
	case e.Code >= 500:
		return true
	case e.Code == http.StatusRequestTimeout, e.Code == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// DecodeError wraps a failure to map the response body onto articles.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode search response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

var apiKeyValue = regexp.MustCompile(`(api-key=)[^&\s"'#]*`)

// RedactAPIKey replaces every api-key query value in s.
func RedactAPIKey(s string) string {
	return apiKeyValue.ReplaceAllString(s, "${1}REDACTED")
}

// redactedError keeps the error chain but hides the api key from its text.
type redactedError struct {
	err error
	msg string
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// RedactError returns err with any api-key value scrubbed from its message.
// errors.Is and errors.As still see the original chain.
func RedactError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	clean := RedactAPIKey(msg)
	if clean == msg {
		return err
	}
	return &redactedError{err: err, msg: clean}
}
