// Package errors provides the structured error type used across the codex.
//
// Every error carries a Code, a caller-facing message, optional metadata and
// an optional cause:
//
//	err := errors.NotFoundf("hero %s has no local profile", heroID).
//	    WithMeta("hero_id", heroID)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.UpsertHeroProfile(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist profile")
//	}
//
// # Domain errors
//
// The consistency engine distinguishes four failure families. Each one is a
// typed cause wrapped in a coded *Error, so both errors.As on the concrete
// type and the code helpers work:
//
//   - InvalidItemError: an item violated a construction invariant (INVALID_ARGUMENT)
//   - MalformedItemError: a remote payload could not be decoded into an item (DATA_LOSS)
//   - LocalStoreError: the local transaction failed; always fatal to the call
//   - RemoteSyncError: the remote store failed; logged and never propagated (UNAVAILABLE)
//
// The reason code of an item error is available through ReasonOf.
//
// # gRPC
//
// ToGRPCError and FromGRPCError convert at the transport boundary. Metadata
// travels as an errdetails.ErrorInfo detail.
package errors
