package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrite_SuccessComputedFromStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantSuccess bool
	}{
		{"200 is success", http.StatusOK, true},
		{"201 is success", http.StatusCreated, true},
		{"299 is success", 299, true},
		{"400 is failure", http.StatusBadRequest, false},
		{"500 is failure", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Write(w, tt.status, "msg")

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantSuccess, body["success"])
			assert.Equal(t, "msg", body["message"])
		})
	}
}

func TestWrite_WithData(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, http.StatusOK, "OK", WithData([]string{"a", "b"}))

	body := decode(t, w)
	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.NotContains(t, body, "error")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestWrite_GoErrorSerializedAsTypeAndMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, http.StatusInternalServerError, "boom", WithError(errors.New("it broke")))

	body := decode(t, w)
	errInfo, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "*errors.errorString", errInfo["type"])
	assert.Equal(t, "it broke", errInfo["message"])
}

func TestWrite_NonErrorValuePassesThrough(t *testing.T) {
	fieldErrs := []map[string]any{{"field": "price", "kind": "number_type"}}

	w := httptest.NewRecorder()
	Write(w, http.StatusBadRequest, "invalid", WithError(fieldErrs))

	body := decode(t, w)
	list, ok := body["error"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "price", list[0].(map[string]any)["field"])
}

func TestPresets(t *testing.T) {
	t.Run("SQLError", func(t *testing.T) {
		w := httptest.NewRecorder()
		SQLError(w, errors.New("syntax error"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "An internal SQL error occurred.", body["message"])
		assert.Contains(t, body, "error")
	})

	t.Run("InternalError", func(t *testing.T) {
		w := httptest.NewRecorder()
		InternalError(w, errors.New("oops"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An internal error occurred.", decode(t, w)["message"])
	})

	t.Run("BadJSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		BadJSON(w)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "The submitted JSON is invalid.", decode(t, w)["message"])
	})

	t.Run("Unreachable", func(t *testing.T) {
		w := httptest.NewRecorder()
		Unreachable(w)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "The database is unreachable.", decode(t, w)["message"])
	})
}
