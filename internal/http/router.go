package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/matchboard/internal/http/handlers"
)

// LogoMount is the URL prefix under which logo files are served.
const LogoMount = "/logos/"

// NewRouter registers the API, probe, and static logo routes.
func NewRouter(handler *handlers.Handler, logoDir string) nethttp.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/matches", handler.ListMatches).Methods(nethttp.MethodGet)
	api.HandleFunc("/matches", handler.CreateMatch).Methods(nethttp.MethodPost)
	api.HandleFunc("/matches/{id}", handler.DeleteMatch).Methods(nethttp.MethodDelete)
	api.HandleFunc("/matches/{id}", handler.UpdateMatchScore).Methods(nethttp.MethodPatch)
	api.HandleFunc("/teams", handler.ListTeams).Methods(nethttp.MethodGet)
	api.HandleFunc("/teams", handler.CreateTeam).Methods(nethttp.MethodPost)

	if logoDir != "" {
		files := nethttp.StripPrefix(LogoMount, nethttp.FileServer(nethttp.Dir(logoDir)))
		r.PathPrefix(LogoMount).Handler(files).Methods(nethttp.MethodGet, nethttp.MethodHead)
	}
	return r
}
