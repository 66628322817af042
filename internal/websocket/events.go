package websocket

import (
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/listing"
)

// EventBroadcaster turns application events into hub broadcasts.
type EventBroadcaster struct {
	hub *Hub
	log *zap.Logger
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub, log *zap.Logger) *EventBroadcaster {
	return &EventBroadcaster{hub: hub, log: log}
}

// CatalogFetched announces a successful listing fetch.
func (b *EventBroadcaster) CatalogFetched(count, dropped int) {
	b.broadcast(NewMessage(TypeCatalogFetched, CatalogFetchedPayload{
		Count:   count,
		Dropped: dropped,
	}))
}

// CatalogFetchFailed announces a failed listing fetch.
func (b *EventBroadcaster) CatalogFetchFailed(url string, err error) {
	b.broadcast(NewMessage(TypeCatalogFetchFailed, CatalogFetchFailedPayload{
		URL:     url,
		Message: err.Error(),
	}))
}

// ReservationConfirmed announces a reservation handed to the confirmation screen.
func (b *EventBroadcaster) ReservationConfirmed(c listing.Confirmation) {
	b.broadcast(NewMessage(TypeReservationConfirmed, ReservationPayload{
		AccommodationName: c.AccommodationName,
		StartDate:         c.StartDate.String(),
		EndDate:           c.EndDate.String(),
		NumberOfPersons:   c.NumberOfPersons,
		TotalPrice:        c.TotalPrice,
	}))
}

func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		b.log.Error("encoding websocket message", zap.String("type", string(msg.Type)), zap.Error(err))
		return
	}

	b.hub.Broadcast(data)
}
