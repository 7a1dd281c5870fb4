package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotLoggedIn is returned when a command needs a token and none is stored.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingCode is wrapped in an AuthExchangeError when no authorization code was given.
	ErrMissingCode = errors.New("missing authorization code")

	// ErrNoDefaultList means no destination list has been chosen yet.
	ErrNoDefaultList = errors.New("no default list selected")

	// ErrEmptySelection means there is no text to turn into a task.
	ErrEmptySelection = errors.New("empty selection")
)

// NetworkError is a transport failure: the request never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthExchangeError is a failed authorization-code exchange.
type AuthExchangeError struct {
	Err error
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("failed to get token: %v", e.Err)
}

func (e *AuthExchangeError) Unwrap() error { return e.Err }

// RemoteError reports a response body that could not be decoded or that
// lacks the expected field.
type RemoteError struct {
	Op     string
	Field  string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil && e.Field != "":
		return fmt.Sprintf("%s: decode %q (status %d): %v", e.Op, e.Field, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: decode response (status %d): %v", e.Op, e.Status, e.Err)
	default:
		return fmt.Sprintf("%s: response has no %q field (status %d)", e.Op, e.Field, e.Status)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is matches ErrNotFound for an undecodable 404 response.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ApplicationError is a well-formed response carrying an error string,
// e.g. {"err": "Oauth token not found", "ECODE": "OAUTH_019"}.
type ApplicationError struct {
	Op      string
	Message string
	Code    string
	Status  int
}

func (e *ApplicationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// notFoundCodes are ClickUp error codes for a missing team, space, folder or list.
var notFoundCodes = map[string]bool{
	"ITEM_013": true,
}

// Is matches ErrNotFound when the service answered 404 or with a not-found code.
func (e *ApplicationError) Is(target error) bool {
	return target == ErrNotFound && (e.Status == http.StatusNotFound || notFoundCodes[e.Code])
}

// IsAuthError reports whether err means the stored credential was rejected
// or is missing, so that the user should sign in again.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotLoggedIn) {
		return true
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusUnauthorized {
			return true
		}
		if strings.HasPrefix(appErr.Code, "OAUTH_") {
			return true
		}
		return strings.Contains(appErr.Message, "Oauth token not found")
	}
	var exErr *AuthExchangeError
	return errors.As(err, &exErr)
}
