package syncerr

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLocalAndRemotePassThroughNotFound(t *testing.T) {
	assert.ErrorIs(t, Local("wallet.get_by_id", ErrNotFound), ErrNotFound)
	assert.ErrorIs(t, Remote("wallet.get_by_id", ErrNotFound), ErrNotFound)
	assert.NoError(t, Local("op", nil))
	assert.NoError(t, Remote("op", nil))
}

func TestIsRecoverable(t *testing.T) {
	cause := errors.New("connection refused")
	assert.True(t, IsRecoverable(Remote("wallet.upsert", cause)))
	assert.False(t, IsRecoverable(Local("wallet.upsert", cause)))
	assert.False(t, IsRecoverable(ErrNotFound))
	assert.False(t, IsRecoverable(nil))
}

func TestWrappedCauseStaysReachable(t *testing.T) {
	cause := errors.New("disk full")
	err := Local("wallet.create", cause)
	assert.ErrorIs(t, err, cause)

	var localErr *LocalStoreError
	assert.ErrorAs(t, err, &localErr)
	assert.Equal(t, "wallet.create", localErr.Op)
}

func TestPartialSyncErrorReportsCounts(t *testing.T) {
	rootID := uuid.New()
	inner := errors.New("write failed")
	err := &PartialSyncError{RootID: rootID, Written: 3, Total: 5, Errs: []error{inner}}

	assert.Contains(t, err.Error(), "3 of 5")
	assert.ErrorIs(t, err, inner)
}
