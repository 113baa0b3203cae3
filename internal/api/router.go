package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lmehner/blockworld/internal/api/handler"
	"github.com/lmehner/blockworld/internal/api/middleware"
	"github.com/lmehner/blockworld/internal/world"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	World  *world.World

	// APITokenHash is a bcrypt hash of the expected bearer token;
	// empty disables authentication
	APITokenHash string
}

// NewRouter creates the admin API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	worldHandler := handler.NewWorldHandler(cfg.World)
	eventsHandler := handler.NewEventsHandler(cfg.World, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.APITokenHash)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires the API token when one is configured
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/overview", worldHandler.Overview).Methods(http.MethodGet)
	protected.HandleFunc("/lists", worldHandler.Lists).Methods(http.MethodGet)
	protected.HandleFunc("/lists", worldHandler.UpdateLists).Methods(http.MethodPatch)
	protected.HandleFunc("/logs", worldHandler.Logs).Methods(http.MethodGet)
	protected.HandleFunc("/online", worldHandler.Online).Methods(http.MethodGet)
	protected.HandleFunc("/players", worldHandler.Players).Methods(http.MethodGet)
	protected.HandleFunc("/players/{name}", worldHandler.Player).Methods(http.MethodGet)
	protected.HandleFunc("/send", worldHandler.Send).Methods(http.MethodPost)
	protected.HandleFunc("/lifecycle/{action}", worldHandler.Lifecycle).Methods(http.MethodPost)
	protected.HandleFunc("/events", eventsHandler.Handle).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
