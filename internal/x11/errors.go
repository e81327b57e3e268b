package x11

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBackgroundSet means the root window carries no background
	// pixmap property, or the property is empty.
	ErrNoBackgroundSet = errors.New("no background pixmap set on the root window")

	// ErrLayoutUnavailable means the monitor layout could not be resolved
	// (RandR missing, or the layout changed mid-query). Capture itself can
	// still succeed without masking; that choice belongs to the caller.
	ErrLayoutUnavailable = errors.New("display layout unavailable")

	// ErrNoActiveDisplays means RandR answered but reported zero enabled
	// CRTCs.
	ErrNoActiveDisplays = errors.New("no active displays")
)

// MalformedPropertyError reports a background property whose shape is not
// the single 32-bit pixmap identifier we expect.
type MalformedPropertyError struct {
	Property string
	Format   byte
	ValueLen uint32
}

func (e *MalformedPropertyError) Error() string {
	return fmt.Sprintf("malformed %s property: format=%d values=%d (want one 32-bit value)",
		e.Property, e.Format, e.ValueLen)
}

// QueryError wraps a failed request/reply round trip against the X server.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("x11 query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
