package session

import (
	"errors"
	"fmt"
)

// OpErrorCode categorizes session operation failures.
type OpErrorCode string

const (
	// ErrCodeScanFailed indicates a Document Access call failed during a
	// scan. The queue is left empty and the session stays usable.
	ErrCodeScanFailed OpErrorCode = "SCAN_FAILED"

	// ErrCodeResolveFailed indicates a Document Access call failed during
	// an accept or reject. Queue and document mutation are not
	// transactional; a fresh scan reconstructs ground truth.
	ErrCodeResolveFailed OpErrorCode = "RESOLVE_FAILED"
)

// OpError is a Document Access failure caught at an operation boundary.
//
// Nothing in the session lets a host failure escape raw: the session runs
// inside host-managed callbacks where an unhandled failure can stall the
// host UI, so every failure is wrapped, reported, and recoverable.
type OpError struct {
	// Code identifies the failure category.
	Code OpErrorCode

	// Op names the operation that failed ("scan", "accept_one", ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying Document Access error.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// IsScanFailure reports whether err is a scan-phase failure.
// Uses errors.As to handle wrapped errors.
func IsScanFailure(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeScanFailed
	}
	return false
}

// IsResolutionFailure reports whether err is a resolution-phase failure.
// Uses errors.As to handle wrapped errors.
func IsResolutionFailure(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeResolveFailed
	}
	return false
}

func newScanError(op, message string, err error) *OpError {
	return &OpError{Code: ErrCodeScanFailed, Op: op, Message: message, Err: err}
}

func newResolveError(op, message string, err error) *OpError {
	return &OpError{Code: ErrCodeResolveFailed, Op: op, Message: message, Err: err}
}
