// Package websocket streams refresh-run progress to dashboard clients.
package websocket

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin dashboard; no cross-site state to protect
	},
}

// Server owns the hub and upgrades dashboard connections.
type Server struct {
	hub *Hub
}

// NewServer creates the server and starts its hub.
func NewServer() *Server {
	hub := NewHub()
	go hub.Run()
	return &Server{hub: hub}
}

// Hub exposes the underlying hub for broadcasting.
func (s *Server) Hub() *Hub {
	return s.hub
}

// HandleRefreshProgress upgrades the connection and joins it to the
// progress stream. Mounted at /ws/refresh.
func (s *Server) HandleRefreshProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}
