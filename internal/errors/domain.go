package errors

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable code explaining why an item was rejected.
type Reason string

// InvalidItemError reports an item construction invariant violation.
type InvalidItemError struct {
	Reason Reason
	ItemID string
	Detail string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("item %q: %s (%s)", e.ItemID, e.Detail, e.Reason)
}

// MalformedItemError reports a wire payload that could not be decoded into an item.
type MalformedItemError struct {
	Reason Reason
	ItemID string
	Detail string
	Cause  error
}

func (e *MalformedItemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("item %q: %s (%s): %v", e.ItemID, e.Detail, e.Reason, e.Cause)
	}
	return fmt.Sprintf("item %q: %s (%s)", e.ItemID, e.Detail, e.Reason)
}

func (e *MalformedItemError) Unwrap() error {
	return e.Cause
}

// LocalStoreError reports a failed local persistence operation.
type LocalStoreError struct {
	Op     string
	HeroID string
	Cause  error
}

func (e *LocalStoreError) Error() string {
	return fmt.Sprintf("local store %s for hero %q: %v", e.Op, e.HeroID, e.Cause)
}

func (e *LocalStoreError) Unwrap() error {
	return e.Cause
}

// RemoteSyncError reports a failed remote store operation.
type RemoteSyncError struct {
	Op          string
	InventoryID string
	Cause       error
}

func (e *RemoteSyncError) Error() string {
	return fmt.Sprintf("remote %s for inventory %q: %v", e.Op, e.InventoryID, e.Cause)
}

func (e *RemoteSyncError) Unwrap() error {
	return e.Cause
}

// InvalidItem builds an INVALID_ARGUMENT error around an InvalidItemError.
func InvalidItem(reason Reason, itemID, format string, args ...any) *Error {
	cause := &InvalidItemError{
		Reason: reason,
		ItemID: itemID,
		Detail: fmt.Sprintf(format, args...),
	}
	return WrapWithCode(cause, CodeInvalidArgument, "invalid item").
		WithMeta("reason", string(reason)).
		WithMeta("item_id", itemID)
}

// MalformedItem builds a DATA_LOSS error around a MalformedItemError.
func MalformedItem(reason Reason, itemID string, cause error, format string, args ...any) *Error {
	detail := &MalformedItemError{
		Reason: reason,
		ItemID: itemID,
		Detail: fmt.Sprintf(format, args...),
		Cause:  cause,
	}
	return WrapWithCode(detail, CodeDataLoss, "malformed item").
		WithMeta("reason", string(reason)).
		WithMeta("item_id", itemID)
}

// LocalStore wraps a local persistence failure. The code of the cause is
// kept when it carries one.
func LocalStore(op, heroID string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return WrapWithCode(&LocalStoreError{Op: op, HeroID: heroID, Cause: cause}, GetCode(cause), "local store failure").
		WithMeta("hero_id", heroID)
}

// RemoteSync wraps a remote store failure as UNAVAILABLE.
func RemoteSync(op, inventoryID string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return WrapWithCode(&RemoteSyncError{Op: op, InventoryID: inventoryID, Cause: cause}, CodeUnavailable, "remote sync failure").
		WithMeta("inventory_id", inventoryID)
}

// ReasonOf returns the reason code of an item error, or "" if err is not one.
func ReasonOf(err error) Reason {
	var malformed *MalformedItemError
	if errors.As(err, &malformed) {
		return malformed.Reason
	}
	var invalid *InvalidItemError
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return ""
}

// IsInvalidItem reports whether err wraps an InvalidItemError.
func IsInvalidItem(err error) bool {
	var target *InvalidItemError
	return errors.As(err, &target)
}

// IsMalformedItem reports whether err wraps a MalformedItemError.
func IsMalformedItem(err error) bool {
	var target *MalformedItemError
	return errors.As(err, &target)
}

// IsLocalStore reports whether err wraps a LocalStoreError.
func IsLocalStore(err error) bool {
	var target *LocalStoreError
	return errors.As(err, &target)
}

// IsRemoteSync reports whether err wraps a RemoteSyncError.
func IsRemoteSync(err error) bool {
	var target *RemoteSyncError
	return errors.As(err, &target)
}
