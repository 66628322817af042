package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	ws "github.com/stay-browser/server/internal/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxMessage = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stream carries no visitor data, only diagnostics.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketUpgrade returns a handler that upgrades HTTP connections to WebSocket.
func WebSocketUpgrade(hub *ws.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := ws.NewClient()
		if !hub.Register(client) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			conn.Close()
			return
		}

		// Replies to client commands go through the write pump, which owns
		// every write on the connection.
		replies := make(chan []byte, 8)
		go writePump(conn, client, replies)
		go readPump(conn, client, hub, replies, log)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func writePump(conn *websocket.Conn, client *ws.Client, replies <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case reply, ok := <-replies:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client commands until the connection closes.
func readPump(conn *websocket.Conn, client *ws.Client, hub *ws.Hub, replies chan<- []byte, log *zap.Logger) {
	defer func() {
		hub.Unregister(client)
		close(replies)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug("websocket read error", zap.String("client", client.ID), zap.Error(err))
			}
			return
		}

		reply := handleClientMessage(message)
		data, err := reply.JSON()
		if err != nil {
			log.Error("encoding websocket reply", zap.Error(err))
			continue
		}
		select {
		case replies <- data:
		default:
			log.Debug("dropping websocket reply", zap.String("client", client.ID))
		}
	}
}

// handleClientMessage answers a single client command.
func handleClientMessage(message []byte) ws.Message {
	var cmd ws.ClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		return ws.NewMessage(ws.TypeError, ws.ErrorPayload{
			Code:    "invalid_message",
			Message: "Message is not valid JSON",
		})
	}

	switch cmd.Type {
	case ws.TypePing:
		return ws.NewMessage(ws.TypePong, nil)
	default:
		return ws.NewMessage(ws.TypeError, ws.ErrorPayload{
			Code:         "unknown_command",
			Message:      "Unknown command",
			OriginalType: string(cmd.Type),
		})
	}
}
