package geoip

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode classifies the failure modes a query or open can produce.
// NoData is deliberately absent: it is not an error, it is a nil result.
type ErrorCode int

const (
	// ErrIO covers read failures against the underlying byte source.
	ErrIO ErrorCode = iota
	// ErrBadAddress covers addresses that fail to parse as IPv4 or IPv6.
	ErrBadAddress
	// ErrUnsupportedEdition covers a structure-info edition byte with no decoder.
	ErrUnsupportedEdition
	// ErrInvalidForEdition covers an operation called against the wrong database edition.
	ErrInvalidForEdition
	// ErrCorruptDatabase covers a trie that never terminates or an out-of-range reference index.
	ErrCorruptDatabase
)

func (c ErrorCode) String() string {
	switch c {
	case ErrIO:
		return "io"
	case ErrBadAddress:
		return "bad_address"
	case ErrUnsupportedEdition:
		return "unsupported_edition"
	case ErrInvalidForEdition:
		return "invalid_for_edition"
	case ErrCorruptDatabase:
		return "corrupt_database"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every public operation in this package.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geoip: %s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("geoip: %s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newErr(op string, code ErrorCode, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

func wrapf(op string, code ErrorCode, err error, format string, args ...any) *Error {
	return &Error{Op: op, Code: code, Err: errors.Wrapf(err, format, args...)}
}

// IsCode reports whether err is a *Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
