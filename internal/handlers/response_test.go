package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-backend/internal/syncerr"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespondErrorPartialSync(t *testing.T) {
	rootID := uuid.New()
	rec, body := respond(t, &syncerr.PartialSyncError{
		RootID:  rootID,
		Written: 2,
		Total:   5,
		Errs:    []error{errors.New("boom")},
	})

	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	assert.Equal(t, rootID.String(), body["root_id"])
	assert.Equal(t, float64(2), body["dependents_written"])
	assert.Equal(t, float64(5), body["dependents_total"])
}

func TestRespondErrorRemoteIsRetryable(t *testing.T) {
	rec, body := respond(t, syncerr.Remote("wallet.upsert", errors.New("connection refused")))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, true, body["retryable"])
}

func TestRespondErrorLocalHidesDetail(t *testing.T) {
	rec, body := respond(t, syncerr.Local("wallet.create", errors.New("disk corruption at page 4")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to save", body["error"])
}

func TestRespondErrorNotFound(t *testing.T) {
	rec, _ := respond(t, syncerr.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRespondErrorFallback(t *testing.T) {
	rec, body := respond(t, errors.New("month must look like 2006-01"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "month must look like 2006-01", body["error"])
}
