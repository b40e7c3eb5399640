// Package mqtt provides a publish-only MQTT client for the order event relay.
//
// When the relay is enabled, every order lifecycle event broadcast to
// WebSocket subscribers is also mirrored to printdesk/orders/<event> topics
// so back-office systems can integrate without holding a WebSocket open.
//
// Relay delivery is best-effort like all notification delivery: publish
// failures are logged and swallowed, never surfaced to the mutation path.
//
// Thread Safety: all methods are safe for concurrent use.
package mqtt
