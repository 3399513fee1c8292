package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	CustomHTTPErrorHandler(err, c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestCustomHTTPErrorHandler_PartialBulkFailure_Returns207WithDetails(t *testing.T) {
	err := apperror.NewPartialBulkFailureError("1 of 3 files could not be deleted", []apperror.FieldError{
		{Field: "f-2", Message: "storage timeout"},
	})

	rec, body := handleError(t, err)
	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	assert.Equal(t, string(apperror.CodePartialBulkFailure), body.Error.Code)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "f-2", body.Error.Details[0].Field)
}

func TestCustomHTTPErrorHandler_StorageFailure_IsRetryable503(t *testing.T) {
	rec, body := handleError(t, apperror.NewStorageOperationFailedError(errors.New("timeout")))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.True(t, body.Error.Retryable)
}

func TestCustomHTTPErrorHandler_NotFound_HidesOwnership(t *testing.T) {
	rec, body := handleError(t, apperror.NewNotFoundError("folder"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "folder not found", body.Error.Message)
}

func TestCustomHTTPErrorHandler_UnknownError_Returns500(t *testing.T) {
	rec, body := handleError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, string(apperror.CodeInternalError), body.Error.Code)
}
