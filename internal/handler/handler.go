package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cantina-api/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// decodePayload decodes a JSON object body. Numbers are kept as
// json.Number so monetary values reach the decimal type through their
// literal text, never through a binary float.
func decodePayload(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// isDatabaseError reports whether err originated in the database driver or
// the connection to the server, as opposed to a bug in this process.
func isDatabaseError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return errors.Is(err, model.ErrNotInitialized)
}
