package notes

import (
	"errors"
	"fmt"
)

// ErrDatabaseUnavailable is returned when no usable connection handle exists.
var ErrDatabaseUnavailable = errors.New("database not connected")

// Kind classifies failures surfaced by the Service.
type Kind int

const (
	KindUnknown Kind = iota
	KindDatabaseUnavailable
	KindValidation
	KindCreation
	KindRetrieval
)

func (k Kind) String() string {
	switch k {
	case KindDatabaseUnavailable:
		return "database unavailable"
	case KindValidation:
		return "validation error"
	case KindCreation:
		return "creation failure"
	case KindRetrieval:
		return "retrieval failure"
	default:
		return "unknown"
	}
}

// Error carries the Kind of a failure along with the operation and cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// storageError classifies a storage failure: a missing or dropped connection
// stays DatabaseUnavailable, everything else gets fallback.
func storageError(op string, fallback Kind, err error) error {
	kind := fallback
	if errors.Is(err, ErrDatabaseUnavailable) {
		kind = KindDatabaseUnavailable
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
