package datadog

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a remote HTTP failure into user-facing meaning
type ErrorKind int

const (
	// ErrorRemote covers any non-2xx status without a more specific meaning
	ErrorRemote ErrorKind = iota
	// ErrorNotFound is a remote 404
	ErrorNotFound
	// ErrorPermissionDenied is a remote 403
	ErrorPermissionDenied
)

// ClassifyStatus maps an HTTP status code to an ErrorKind
func ClassifyStatus(code int) ErrorKind {
	switch code {
	case http.StatusNotFound:
		return ErrorNotFound
	case http.StatusForbidden:
		return ErrorPermissionDenied
	default:
		return ErrorRemote
	}
}

// StatusError reports a non-2xx response from the Datadog API
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Kind returns the classification of the response status
func (e *StatusError) Kind() ErrorKind {
	return ClassifyStatus(e.StatusCode)
}
