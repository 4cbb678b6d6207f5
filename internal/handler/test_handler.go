package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cantina-api/internal/response"

	"github.com/rs/zerolog"
)

// TestHandler serves the API self-test routes.
type TestHandler struct {
	reachable func() bool
	logger    zerolog.Logger
}

// NewTestHandler creates a new test handler. reachable reports the
// watchdog's view of database connectivity.
func NewTestHandler(reachable func() bool, logger zerolog.Logger) *TestHandler {
	return &TestHandler{
		reachable: reachable,
		logger:    logger.With().Str("handler", "test").Logger(),
	}
}

// Ping handles /api/test for every verb. Bodies on POST and PUT are parsed
// and discarded; a parse failure is the only way this route fails.
func (h *TestHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		var body any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Write(w, http.StatusInternalServerError,
				fmt.Sprintf("Test failed for method: %s", r.Method),
				response.WithError(err))
			return
		}
	}
	response.Write(w, http.StatusOK, "Test completed, no apparent errors.")
}

// DBPing handles GET /api/test/db, reporting database reachability.
func (h *TestHandler) DBPing(w http.ResponseWriter, r *http.Request) {
	if !h.reachable() {
		response.Unreachable(w)
		return
	}
	response.Write(w, http.StatusOK, "Database reachable.")
}
