package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide whether to retry,
// report or give up.
type ErrorKind int

const (
	// ErrorInvariant means a constructed value violates a required,
	// uniqueness or enumeration rule. Never retried.
	ErrorInvariant ErrorKind = iota
	// ErrorNotFound means an expected id or type is absent in the store.
	ErrorNotFound
	// ErrorConcurrentUpdate means an optimistic update precondition failed.
	ErrorConcurrentUpdate
	// ErrorSystem means an infrastructure failure such as transport errors
	// or malformed recursion.
	ErrorSystem
)

// String returns the string representation of ErrorKind
func (kind ErrorKind) String() string {
	switch kind {
	case ErrorInvariant:
		return "invariant"
	case ErrorNotFound:
		return "not-found"
	case ErrorConcurrentUpdate:
		return "concurrent-update"
	case ErrorSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any ClassifiedError of that kind.
var (
	ErrInvariant        = errors.New("invariant violated")
	ErrNotFound         = errors.New("not found")
	ErrConcurrentUpdate = errors.New("concurrent update")
	ErrSystem           = errors.New("system failure")
)

func (kind ErrorKind) sentinel() error {
	switch kind {
	case ErrorInvariant:
		return ErrInvariant
	case ErrorNotFound:
		return ErrNotFound
	case ErrorConcurrentUpdate:
		return ErrConcurrentUpdate
	default:
		return ErrSystem
	}
}

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	switch {
	case ce.Err == nil:
		return ce.Message
	case ce.Message == "":
		return ce.Err.Error()
	default:
		return ce.Message + ": " + ce.Err.Error()
	}
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Is matches the sentinel of the error's kind.
func (ce *ClassifiedError) Is(target error) bool {
	return target == ce.Kind.sentinel()
}

// NewInvariantError creates an InvariantError with a formatted message.
func NewInvariantError(format string, args ...any) error {
	return &ClassifiedError{Kind: ErrorInvariant, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a NotFoundError with a formatted message.
func NewNotFoundError(format string, args ...any) error {
	return &ClassifiedError{Kind: ErrorNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConcurrentUpdateError creates a ConcurrentUpdateError with a formatted message.
func NewConcurrentUpdateError(format string, args ...any) error {
	return &ClassifiedError{Kind: ErrorConcurrentUpdate, Message: fmt.Sprintf(format, args...)}
}

// NewSystemError wraps err as a SystemError. err may be nil.
func NewSystemError(err error, format string, args ...any) error {
	return &ClassifiedError{Kind: ErrorSystem, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the outermost ClassifiedError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsInvariant checks if an error is an InvariantError
func IsInvariant(err error) bool {
	return errors.Is(err, ErrInvariant)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConcurrentUpdate checks if an error is a ConcurrentUpdateError
func IsConcurrentUpdate(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}

// IsSystem checks if an error is a SystemError
func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}
