// Package handlers provides the HTTP handlers for the listing and
// confirmation screens and their JSON API.
package handlers

import (
	"net/http"

	"github.com/stay-browser/server/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status           string `json:"status"`
	WebSocketClients int    `json:"websocket_clients"`
}

// HealthCheck reports liveness. The upstream catalog is not probed: a failing
// upstream degrades to an empty listing, not an unhealthy server.
func HealthCheck(hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:           "healthy",
			WebSocketClients: hub.ClientCount(),
		})
	}
}
