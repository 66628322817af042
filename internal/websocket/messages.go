package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeCatalogFetched       MessageType = "catalog.fetched"
	TypeCatalogFetchFailed   MessageType = "catalog.fetch_failed"
	TypeReservationConfirmed MessageType = "reservation.confirmed"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ClientCommand is what clients send upstream.
type ClientCommand struct {
	Type MessageType `json:"type"`
}

// CatalogFetchedPayload is the payload for catalog.fetched events.
type CatalogFetchedPayload struct {
	Count   int `json:"count"`
	Dropped int `json:"dropped"`
}

// CatalogFetchFailedPayload is the payload for catalog.fetch_failed events.
type CatalogFetchFailedPayload struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// ReservationPayload is the payload for reservation.confirmed events.
type ReservationPayload struct {
	AccommodationName string  `json:"accommodationName"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	NumberOfPersons   int     `json:"numberOfPersons"`
	TotalPrice        float64 `json:"totalPrice"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	OriginalType string `json:"original_type,omitempty"`
}
