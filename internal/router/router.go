package router

import (
	"net/http"
	"time"

	"cantina-api/internal/handler"
	"cantina-api/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// reachable is the watchdog's connectivity flag; cooldown throttles
// mutating product routes per client IP (non-positive disables it).
func New(
	products *handler.ProductHandler,
	test *handler.TestHandler,
	reachable func() bool,
	cooldown time.Duration,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Liveness endpoint, outside the API connectivity gate.
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/test", test.Ping).
		Methods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)
	api.HandleFunc("/test/db", test.DBPing).Methods(http.MethodGet)

	// Cooldown runs before the connectivity gate: a throttled client gets
	// the retry response even while the database is down.
	catalogue := api.PathPrefix("/products").Subrouter()
	catalogue.Use(middleware.Cooldown(cooldown, logger))
	catalogue.Use(middleware.Connectivity(reachable, logger))
	catalogue.HandleFunc("", products.List).Methods(http.MethodGet)
	catalogue.HandleFunc("", products.Create).Methods(http.MethodPost)
	catalogue.HandleFunc("/{id:[0-9]+}", products.Get).Methods(http.MethodGet)
	catalogue.HandleFunc("/{id:[0-9]+}", products.Update).Methods(http.MethodPut)
	catalogue.HandleFunc("/{id:[0-9]+}", products.Delete).Methods(http.MethodDelete)

	// Apply outer middleware in order: Recovery -> Logging -> CORS.
	var h http.Handler = r
	h = cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
