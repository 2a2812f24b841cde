// Package syncerr defines the error taxonomy shared by the store
// adapters, the unified repositories and the aggregate sync services.
// Adapter errors are classified by the tier they came from: the local
// store is assumed reliable so its failures are fatal to the calling
// operation, while remote failures are recoverable and retryable by
// the caller.
package syncerr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by adapters when an id does not resolve to a
// record in the backing store.
var ErrNotFound = errors.New("record not found")

// LocalStoreError wraps a failure of the on-device store. There is no
// retry path for these.
type LocalStoreError struct {
	Op    string
	Cause error
}

func (e *LocalStoreError) Error() string {
	return fmt.Sprintf("local store failure (op=%s): %v", e.Op, e.Cause)
}

func (e *LocalStoreError) Unwrap() error { return e.Cause }

func Local(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrNotFound) {
		return cause
	}
	return &LocalStoreError{Op: op, Cause: cause}
}

// RemoteStoreError wraps a failure of the cloud store: network errors,
// auth rejections, timeouts. Callers may retry.
type RemoteStoreError struct {
	Op    string
	Cause error
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("remote store unavailable (op=%s): %v", e.Op, e.Cause)
}

func (e *RemoteStoreError) Unwrap() error { return e.Cause }

func Remote(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrNotFound) {
		return cause
	}
	return &RemoteStoreError{Op: op, Cause: cause}
}

// PartialSyncError reports an aggregate transfer that wrote the root
// but not every dependent. The destination is left root-present with
// an incomplete dependent set; nothing is rolled back because no
// transaction spans the two stores.
type PartialSyncError struct {
	RootID  uuid.UUID
	Written int
	Total   int
	Errs    []error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("partial aggregate sync (root=%s): %d of %d dependents written", e.RootID, e.Written, e.Total)
}

func (e *PartialSyncError) Unwrap() []error { return e.Errs }

// IdentityMismatchError marks locally cached data that belongs to a
// different user than the incoming session. The orchestrator responds
// with a forced local wipe.
type IdentityMismatchError struct {
	CachedUserID   uuid.UUID
	IncomingUserID uuid.UUID
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("cached data belongs to user %s, session is user %s", e.CachedUserID, e.IncomingUserID)
}

// IsRecoverable reports whether the caller may meaningfully retry the
// failed operation.
func IsRecoverable(err error) bool {
	var remote *RemoteStoreError
	return errors.As(err, &remote)
}
