package controller

import (
	"errors"
	"fmt"
)

var (
	// ErrLoginFailed is returned when the login form answers with an HTML page
	// instead of a session.
	ErrLoginFailed = errors.New("Login Failed")

	ErrNotLoggedIn = errors.New("no controller session")
)

// StatusError is returned for a dataservice response outside the 2xx range.
type StatusError struct {
	StatusCode   int
	ContentType  string
	ResponseBody []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}

// QueryError names the mount point a dataservice query failed on.
type QueryError struct {
	MountPoint string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.MountPoint, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors see through the query wrapper.
func (e *QueryError) Cause() error { return e.Err }
