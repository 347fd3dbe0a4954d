package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pixeldrop/pixeldrop/internal/logging"
)

// NewRouter assembles the HTTP API. Both API endpoints are POST-only;
// chi answers any other verb on those paths with a bare 405 and no body.
func NewRouter(gate Gate, issuer Issuer, logger logging.Logger) http.Handler {
	h := NewHandlers(gate, issuer, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	r.Get("/health", h.Health)

	r.Post("/api/auth", h.Auth)

	r.Group(func(r chi.Router) {
		if gate.TokensEnabled() {
			r.Use(RequireSession(gate))
		}
		r.Post("/api/presign", h.Presign)
	})

	return r
}
