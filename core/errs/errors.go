package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error so callers can decide whether a failure aborts
// a sync pass, is recorded against one item, or is a normal outcome.
type ErrKind int

const (
	ErrKindUnknown            ErrKind = iota
	ErrKindStorageUnavailable         // listing or metadata call failed
	ErrKindStoreUnavailable           // relational store unreachable or query failed
	ErrKindRecordConflict             // unique natural key already taken
	ErrKindMalformedKey               // object key does not fit the path convention
	ErrKindNotFound                   // no row, object or bucket
	ErrKindInvalidInput               // bad arguments from the caller
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindStorageUnavailable:
		return "storage_unavailable"
	case ErrKindStoreUnavailable:
		return "store_unavailable"
	case ErrKindRecordConflict:
		return "record_conflict"
	case ErrKindMalformedKey:
		return "malformed_key"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the storage, store and sync layers.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsStorageUnavailable reports whether err is an object storage failure.
func IsStorageUnavailable(err error) bool {
	return KindOf(err) == ErrKindStorageUnavailable
}

// IsStoreUnavailable reports whether err is a relational store failure.
func IsStoreUnavailable(err error) bool {
	return KindOf(err) == ErrKindStoreUnavailable
}

// IsRecordConflict reports whether err is a unique-key violation.
func IsRecordConflict(err error) bool {
	return KindOf(err) == ErrKindRecordConflict
}

// IsMalformedKey reports whether err was raised for an unparseable object key.
func IsMalformedKey(err error) bool {
	return KindOf(err) == ErrKindMalformedKey
}

// IsNotFound reports whether err represents a missing row, object or bucket.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
