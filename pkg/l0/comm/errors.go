package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameTooLong indicates too many params for a single frame.
	ErrFrameTooLong = errors.New("frame too long")
	// ErrBadHeader indicates the bytes don't start with the frame header.
	ErrBadHeader = errors.New("bad frame header")
	// ErrShortFrame indicates fewer bytes than announced by the count.
	ErrShortFrame = errors.New("short frame")
	// ErrBadReadSize indicates a negative read length.
	ErrBadReadSize = errors.New("bad read size")
)

// TransportError wraps failures of the underlying bus transaction.
type TransportError struct {
	Op   string
	Code byte
	Err  error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s command 0x%02x: %v", e.Op, e.Code, e.Err)
}

// Unwrap returns the bus error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
