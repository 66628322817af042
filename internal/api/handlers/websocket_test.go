package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ws "github.com/stay-browser/server/internal/websocket"
)

func dialHub(t *testing.T) (*websocket.Conn, *ws.Hub) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub(zap.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(WebSocketUpgrade(hub, zap.NewNop()))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, hub
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg ws.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebSocket_PingPong(t *testing.T) {
	conn, _ := dialHub(t)

	require.NoError(t, conn.WriteJSON(ws.ClientCommand{Type: ws.TypePing}))
	assert.Equal(t, ws.TypePong, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(ws.ClientCommand{Type: "subscribe"}))
	assert.Equal(t, ws.TypeError, readMessage(t, conn).Type)
}

func TestWebSocket_ReceivesBroadcasts(t *testing.T) {
	conn, hub := dialHub(t)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	ws.NewEventBroadcaster(hub, zap.NewNop()).CatalogFetched(3, 1)

	msg := readMessage(t, conn)
	assert.Equal(t, ws.TypeCatalogFetched, msg.Type)
	payload, ok := msg.Payload.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, payload["count"])
}
