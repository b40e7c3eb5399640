package api

import (
	"encoding/json"
	"fmt"

	"github.com/printdeskhq/printdesk/internal/infrastructure/logging"
	"github.com/printdeskhq/printdesk/internal/order"
)

// Order event types broadcast over the "orders" channel.
const (
	EventOrderCreated = "orderCreated"
	EventOrderUpdated = "orderUpdated"
	EventOrderDeleted = "orderDeleted"

	// EventOrderStatus is sent on the per-order channel when an order changes,
	// so displays tracking a single order need not filter the full stream.
	EventOrderStatus = "orderStatus"
)

// relayTopicPrefix is the MQTT topic prefix for mirrored order events.
const relayTopicPrefix = "printdesk/orders/"

// RelayPublisher mirrors order events to an external broker.
// Implemented by the mqtt package client; nil disables mirroring.
type RelayPublisher interface {
	Publish(topic string, payload []byte) error
	IsConnected() bool
}

// OrderEvents publishes order lifecycle events to WebSocket subscribers and,
// when a relay is configured, mirrors them to MQTT topics.
//
// Publish methods are called after the store mutation has committed and its
// lock is released. Delivery is best-effort; failures are logged, never
// returned to the caller.
type OrderEvents struct {
	hub    *Hub
	relay  RelayPublisher
	logger *logging.Logger
}

// NewOrderEvents creates an order event publisher. relay may be nil.
func NewOrderEvents(hub *Hub, relay RelayPublisher, logger *logging.Logger) *OrderEvents {
	return &OrderEvents{
		hub:    hub,
		relay:  relay,
		logger: logger,
	}
}

// PublishCreated broadcasts a creation event carrying the full order snapshot.
func (e *OrderEvents) PublishCreated(o *order.Order) {
	payload := map[string]any{
		"message": fmt.Sprintf("Order %s created for %s", o.OrderID, o.CustomerName),
		"order":   o,
	}
	e.hub.Broadcast(ChannelOrders, EventOrderCreated, payload)
	e.mirror(EventOrderCreated, payload)
}

// PublishUpdated broadcasts an update event with the full snapshot on the
// "orders" channel, and a trimmed status event on the order's own channel.
func (e *OrderEvents) PublishUpdated(o *order.Order) {
	payload := map[string]any{
		"message": fmt.Sprintf("Order %s updated", o.OrderID),
		"order":   o,
	}
	e.hub.Broadcast(ChannelOrders, EventOrderUpdated, payload)

	statusPayload := map[string]any{
		"orderId":          o.OrderID,
		"status":           o.Status,
		"deliverySchedule": o.DeliverySchedule,
		"message":          fmt.Sprintf("Order %s is now %s", o.OrderID, o.Status),
	}
	e.hub.Broadcast(OrderChannel(o.OrderID), EventOrderStatus, statusPayload)

	e.mirror(EventOrderUpdated, payload)
}

// PublishDeleted broadcasts a deletion event carrying the identifier only.
func (e *OrderEvents) PublishDeleted(orderID string) {
	payload := map[string]any{
		"orderId": orderID,
		"message": fmt.Sprintf("Order %s deleted", orderID),
	}
	e.hub.Broadcast(ChannelOrders, EventOrderDeleted, payload)
	e.mirror(EventOrderDeleted, payload)
}

// mirror publishes the event payload to the MQTT relay if one is connected.
func (e *OrderEvents) mirror(eventType string, payload any) {
	if e.relay == nil || !e.relay.IsConnected() {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		e.logger.Error("failed to marshal relay payload", "event", eventType, "error", err)
		return
	}

	if err := e.relay.Publish(relayTopicPrefix+eventType, data); err != nil {
		e.logger.Warn("order event relay publish failed", "event", eventType, "error", err)
	}
}
