package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes builds the local diagnostic router. Read-only: nothing here can
// mutate session state.
func SetupRoutes(state StateProvider, votes VoteReader) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/state", State(state, votes))
	return r
}
