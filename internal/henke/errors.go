package henke

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the service does not recognize the requested
// element or material.
var ErrNotFound = errors.New("henke: element or material not recognized")

// ErrLinkNotFound is returned when a result page does not link to a data file,
// usually because the service rendered an error page instead.
var ErrLinkNotFound = errors.New("henke: no data file link in response")

// TransportError is a failed round trip, either the request itself failed or
// the service answered with a non 2xx status.
type TransportError struct {
	Op  string
	URL string
	// zero if no response was received
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("henke: %s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("henke: %s %s: %s", e.Op, e.URL, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is a response body that does not have the expected shape.
type ParseError struct {
	// 1-indexed, zero if the error is not tied to a line
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("henke: parse: %s", e.Reason)
	}
	return fmt.Sprintf("henke: parse: line %d %q: %s", e.Line, e.Text, e.Reason)
}
