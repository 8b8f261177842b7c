// Package rest serves the dashboard pages, the JSON API over the latest
// season snapshot, the CSV exports, and the refresh trigger.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/rinkside/internal/api/websocket"
	"github.com/fortuna/rinkside/internal/season"
)

// Server is the HTTP front of the service.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer wires routes, middleware and the progress WebSocket.
func NewServer(port string, svc *season.Service, ws *websocket.Server) *Server {
	handler := NewHandler(svc)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Dashboard
	router.HandleFunc("/", handler.Index).Methods("GET")

	// Progress stream
	router.HandleFunc("/ws/refresh", ws.HandleRefreshProgress)

	// API v1
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/goals", handler.GetGoals).Methods("GET")
	api.HandleFunc("/roster", handler.GetRoster).Methods("GET")
	api.HandleFunc("/report", handler.GetReport).Methods("GET")
	api.HandleFunc("/players/points-series", handler.GetPointsSeries).Methods("GET")
	api.HandleFunc("/export/games.csv", handler.ExportGames).Methods("GET")
	api.HandleFunc("/export/goals.csv", handler.ExportGoals).Methods("GET")
	api.HandleFunc("/export/roster.csv", handler.ExportRoster).Methods("GET")
	api.HandleFunc("/refresh", handler.TriggerRefresh).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Router exposes the handler mux for tests.
func (s *Server) Router() http.Handler {
	return s.server.Handler
}
