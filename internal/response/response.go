// Package response renders the uniform JSON envelope every endpoint
// returns: {success, message, data?, error?} plus an HTTP status code.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the response body shape shared by all endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// Option mutates an envelope before it is written.
type Option func(*Envelope)

// WithData attaches a data payload.
func WithData(data any) Option {
	return func(e *Envelope) { e.Data = data }
}

// WithError attaches an error value. Go errors are serialized as
// {type, message}; anything else (e.g. a validation error list) passes
// through as-is.
func WithError(err any) Option {
	return func(e *Envelope) {
		if goErr, ok := err.(error); ok {
			e.Error = ErrorInfo(goErr)
			return
		}
		e.Error = err
	}
}

// ErrorInfo serializes an error as its type name and description.
func ErrorInfo(err error) map[string]string {
	return map[string]string{
		"type":    fmt.Sprintf("%T", err),
		"message": err.Error(),
	}
}

// Write renders the envelope with the given status code. Success is
// computed from the status alone: anything in [200,299] counts.
func Write(w http.ResponseWriter, status int, message string, opts ...Option) {
	env := Envelope{
		Success: status >= 200 && status <= 299,
		Message: message,
	}
	for _, opt := range opts {
		opt(&env)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// A 204 suppresses the body at the server; the status is the contract.
	_ = json.NewEncoder(w).Encode(env)
}

// SQLError writes the database-error preset.
func SQLError(w http.ResponseWriter, err error) {
	Write(w, http.StatusInternalServerError, "An internal SQL error occurred.", WithError(err))
}

// InternalError writes the generic internal-error preset.
func InternalError(w http.ResponseWriter, err error) {
	Write(w, http.StatusInternalServerError, "An internal error occurred.", WithError(err))
}

// BadJSON writes the malformed-body preset.
func BadJSON(w http.ResponseWriter) {
	Write(w, http.StatusBadRequest, "The submitted JSON is invalid.", WithError("invalid JSON"))
}

// Unreachable writes the database-unreachable preset.
func Unreachable(w http.ResponseWriter) {
	Write(w, http.StatusServiceUnavailable, "The database is unreachable.", WithError("database unreachable"))
}
