package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/accommodation"
	"github.com/stay-browser/server/internal/listing"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.Send():
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub, _ := startHub(t)
	a, b := NewClient(), NewClient()
	require.True(t, hub.Register(a))
	require.True(t, hub.Register(b))
	assert.NotEqual(t, a.ID, b.ID)

	events := NewEventBroadcaster(hub, zap.NewNop())
	events.CatalogFetched(3, 1)

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		assert.Equal(t, TypeCatalogFetched, msg.Type)
		assert.Equal(t, map[string]any{"count": 3.0, "dropped": 1.0}, msg.Payload)
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))

	hub.Unregister(c)

	select {
	case _, ok := <-c.Send():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClientsAndRejectsNewOnes(t *testing.T) {
	hub, cancel := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))

	cancel()

	select {
	case _, ok := <-c.Send():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on stop")
	}
	assert.Eventually(t, func() bool { return !hub.Register(NewClient()) }, time.Second, 10*time.Millisecond)
	hub.Unregister(c)
}

func TestEventBroadcaster_Payloads(t *testing.T) {
	hub, _ := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))
	events := NewEventBroadcaster(hub, zap.NewNop())

	events.CatalogFetchFailed("http://upstream", errors.New("boom"))
	msg := receive(t, c)
	assert.Equal(t, TypeCatalogFetchFailed, msg.Type)
	assert.Equal(t, map[string]any{"url": "http://upstream", "message": "boom"}, msg.Payload)

	events.ReservationConfirmed(listing.Confirmation{
		AccommodationName: "Villa Ana",
		StartDate:         accommodation.MustParseDate("2024-06-05"),
		EndDate:           accommodation.MustParseDate("2024-06-07"),
		NumberOfPersons:   2,
		TotalPrice:        200,
	})
	msg = receive(t, c)
	assert.Equal(t, TypeReservationConfirmed, msg.Type)
	payload, ok := msg.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Villa Ana", payload["accommodationName"])
	assert.Equal(t, "2024-06-05", payload["startDate"])
	assert.Equal(t, 200.0, payload["totalPrice"])
}
