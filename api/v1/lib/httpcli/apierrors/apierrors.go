// Package apierrors classifies non-2xx HTTP responses from the Scheduler
// API into typed errors the httpsched/controller layers can branch on.
package apierrors

import (
	"errors"
	"fmt"
)

// Code names a broad class of Scheduler API error.
type Code int

const (
	CodeUnexpected Code = iota
	// CodeNotLeader marks a 307 (redirect to the current leader) or a 503
	// (no leader currently elected) response.
	CodeNotLeader
)

func (c Code) String() string {
	switch c {
	case CodeNotLeader:
		return "not-leader"
	default:
		return "unexpected"
	}
}

// Error is returned by the httpcli response handler for any response
// status other than 200 or 202.
type Error struct {
	Code     Code
	Status   int
	Location string // populated only for 307 redirects
	Body     []byte
}

func (e *Error) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("apierrors: %s (status %d, location %q)", e.Code, e.Status, e.Location)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("apierrors: %s (status %d): %s", e.Code, e.Status, e.Body)
	}
	return fmt.Sprintf("apierrors: %s (status %d)", e.Code, e.Status)
}

// CodeOf returns the Code carried by err if it is (or wraps) an *Error,
// and false otherwise.
func CodeOf(err error) (Code, bool) {
	type coder interface{ apiErrorCode() Code }
	if c, ok := err.(coder); ok {
		return c.apiErrorCode(), true
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	return 0, false
}

func (e *Error) apiErrorCode() Code { return e.Code }
