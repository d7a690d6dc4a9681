package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/validation"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
		http int
	}{
		{"app error", ErrAmountMismatch, "AMOUNT_MISMATCH", 400},
		{"wrapped app error", fmt.Errorf("svc: %w", ErrForbidden), "FORBIDDEN", 403},
		{"not found", fmt.Errorf("pg: get: %w", repository.ErrNotFound), "NOT_FOUND", 404},
		{"conflict", repository.ErrConflict, "ALREADY_EXISTS", 409},
		{"invalid input", repository.ErrInvalidInput, "BAD_REQUEST", 400},
		{"invalid file", objectstore.ErrTooLarge, "INVALID_FILE", 400},
		{"validation", validation.Errors{{Field: "name", Tag: "required", Detail: "is required"}}, "VALIDATION_FAILED", 400},
		{"unknown", stderrors.New("boom"), "INTERNAL_SERVER_ERROR", 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := FromError(tc.err)
			assert.Equal(t, tc.code, e.Code)
			assert.Equal(t, tc.http, e.HTTPStatus)
		})
	}
}

func TestWithDetail_DoesNotMutateCatalog(t *testing.T) {
	e := ErrNotFound.WithDetail("member")
	assert.Equal(t, "member", e.Detail)
	assert.Empty(t, ErrNotFound.Detail)
	assert.True(t, stderrors.Is(e, ErrNotFound))
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/member", nil)
	WriteError(rec, r, validation.Errors{
		{Field: "name", Tag: "required", Detail: "is required"},
		{Field: "gender", Tag: "oneof", Detail: "must be one of: MALE FEMALE OTHER"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Errors  []Item `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "VALIDATION_FAILED", body.Errors[0].Code)
	assert.Equal(t, "name", body.Errors[0].Field)
}

func TestWriteError_UnauthorizedHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, ErrTokenMissing)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, "created", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"created","data":{"id":"x"}}`, rec.Body.String())
}
