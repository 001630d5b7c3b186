package errors

import (
	"context"
	"errors"
)

// Code classifies an error. The set mirrors the gRPC codes the codex
// actually produces.
type Code string

// Error codes
const (
	CodeOK Code = "OK"
	// CodeCanceled and CodeDeadlineExceeded come from the caller's context
	CodeCanceled         Code = "CANCELED"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	// CodeInvalidArgument covers bad requests and InvalidItemError
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	// CodeFailedPrecondition covers constraint violations in the local store
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	// CodeUnavailable covers RemoteSyncError
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeDataLoss covers stored or remote data that no longer decodes
	CodeDataLoss Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// classify picks a code for an error that is not an *Error
func classify(err error) Code {
	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded
	default:
		return CodeInternal
	}
}
