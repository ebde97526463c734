package ports

import (
	"encoding/json"

	"orderboard/internal/pkg/errs"
)

// Event payload shapes for the push-channel topics. Each payload validates its
// required fields; a failed validation means the event is malformed and must be
// logged and dropped, not applied.

// StoreJoinedPayload announces a client's presence (TopicStoreJoined).
type StoreJoinedPayload struct {
	RestaurantID string `json:"restaurantId"`
	LocationID   string `json:"locationId"`
}

// Validate checks the payload's required fields.
func (p StoreJoinedPayload) Validate() error {
	if p.RestaurantID == "" {
		return errs.NewMalformedPayloadError(TopicStoreJoined, "restaurantId")
	}
	if p.LocationID == "" {
		return errs.NewMalformedPayloadError(TopicStoreJoined, "locationId")
	}
	return nil
}

// StationJoinedPayload announces a station's tag interest (TopicStationJoined).
type StationJoinedPayload struct {
	RestaurantID string   `json:"restaurantId"`
	LocationID   string   `json:"locationId"`
	StationID    string   `json:"stationId"`
	StationTags  []string `json:"stationTags"`
}

// Validate checks the payload's required fields.
func (p StationJoinedPayload) Validate() error {
	if p.RestaurantID == "" {
		return errs.NewMalformedPayloadError(TopicStationJoined, "restaurantId")
	}
	if p.LocationID == "" {
		return errs.NewMalformedPayloadError(TopicStationJoined, "locationId")
	}
	if p.StationID == "" {
		return errs.NewMalformedPayloadError(TopicStationJoined, "stationId")
	}
	return nil
}

// OrderReceivedPayload notifies clients of a new order (TopicOrderReceived and
// TopicNewOrder). StationTags carries the union of the order's item tags so
// stations can filter without fetching.
type OrderReceivedPayload struct {
	OrderID       string   `json:"orderId"`
	RestaurantID  string   `json:"restaurantId"`
	LocationID    string   `json:"locationId"`
	CorrelationID string   `json:"correlationId,omitempty"`
	StationTags   []string `json:"stationTags,omitempty"`
}

// Validate checks the payload's required fields.
func (p OrderReceivedPayload) Validate() error {
	if p.OrderID == "" {
		return errs.NewMalformedPayloadError(TopicOrderReceived, "orderId")
	}
	if p.RestaurantID == "" {
		return errs.NewMalformedPayloadError(TopicOrderReceived, "restaurantId")
	}
	return nil
}

// OrderStatusPayload broadcasts an order-level status transition
// (TopicOrderAccepted, TopicOrderReadyForPickup, TopicOrderCompleted).
// The correlation id is optional: not every client holds the order's metadata.
type OrderStatusPayload struct {
	OrderID       string `json:"orderId"`
	RestaurantID  string `json:"restaurantId"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Validate checks the payload's required fields against the given topic.
func (p OrderStatusPayload) Validate(topic string) error {
	if p.OrderID == "" {
		return errs.NewMalformedPayloadError(topic, "orderId")
	}
	if p.RestaurantID == "" {
		return errs.NewMalformedPayloadError(topic, "restaurantId")
	}
	return nil
}

// OrderItemPayload broadcasts item-level kitchen progress
// (TopicOrderItemStarted, TopicOrderItemCompleted and their dashboard mirrors).
type OrderItemPayload struct {
	OrderID      string   `json:"orderId"`
	ItemID       string   `json:"itemId"`
	RestaurantID string   `json:"restaurantId"`
	LocationID   string   `json:"locationId"`
	StationTags  []string `json:"stationTags,omitempty"`
}

// Validate checks the payload's required fields against the given topic.
func (p OrderItemPayload) Validate(topic string) error {
	if p.OrderID == "" {
		return errs.NewMalformedPayloadError(topic, "orderId")
	}
	if p.ItemID == "" {
		return errs.NewMalformedPayloadError(topic, "itemId")
	}
	return nil
}

// DecodePayload unmarshals raw event bytes into a payload struct, mapping
// decode failures to MalformedPayloadError so callers can treat "bad JSON" and
// "missing field" uniformly.
func DecodePayload[T any](topic string, raw []byte, into *T) error {
	if err := json.Unmarshal(raw, into); err != nil {
		return errs.NewMalformedPayloadErrorWithCause(topic, "payload", err)
	}
	return nil
}
