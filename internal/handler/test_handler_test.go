package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestHandler_Ping(t *testing.T) {
	h := NewTestHandler(func() bool { return true }, zerolog.Nop())

	tests := []struct {
		name           string
		method         string
		body           string
		expectedStatus int
	}{
		{"GET needs no body", http.MethodGet, "", http.StatusOK},
		{"DELETE needs no body", http.MethodDelete, "", http.StatusOK},
		{"POST with valid JSON", http.MethodPost, `{"any":"thing"}`, http.StatusOK},
		{"PUT with valid JSON", http.MethodPut, `[1,2,3]`, http.StatusOK},
		{"POST with broken JSON", http.MethodPost, `{broken`, http.StatusInternalServerError},
		{"PUT with broken JSON", http.MethodPut, `{broken`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Ping(w, httptest.NewRequest(tt.method, "/api/test", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			env := decodeEnvelope(t, w)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "Test completed, no apparent errors.", env["message"])
			} else {
				assert.Equal(t, "Test failed for method: "+tt.method, env["message"])
				require.Contains(t, env, "error")
			}
		})
	}
}

func TestTestHandler_DBPing(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		h := NewTestHandler(func() bool { return true }, zerolog.Nop())

		w := httptest.NewRecorder()
		h.DBPing(w, httptest.NewRequest(http.MethodGet, "/api/test/db", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Database reachable.", decodeEnvelope(t, w)["message"])
	})

	t.Run("Unreachable", func(t *testing.T) {
		h := NewTestHandler(func() bool { return false }, zerolog.Nop())

		w := httptest.NewRecorder()
		h.DBPing(w, httptest.NewRequest(http.MethodGet, "/api/test/db", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "The database is unreachable.", decodeEnvelope(t, w)["message"])
	})
}
