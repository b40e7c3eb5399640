package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsReadTimeout bounds how long tests wait for an expected frame.
const wsReadTimeout = 2 * time.Second

// dialWS connects a WebSocket client to the test server.
func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readWS reads the next frame with a deadline and decodes it.
func readWS(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
		t.Fatalf("setting read deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading frame: %v", err)
	}

	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decoding frame %s: %v", data, err)
	}
	return msg
}

// subscribeWS subscribes the client to channels and consumes the acknowledgement.
func subscribeWS(t *testing.T, conn *websocket.Conn, channels ...string) {
	t.Helper()

	msg := WSMessage{
		Type:    WSTypeSubscribe,
		ID:      "sub-1",
		Payload: WSSubscribePayload{Channels: channels},
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("sending subscribe: %v", err)
	}

	ack := readWS(t, conn)
	if ack.Type != WSTypeResponse {
		t.Fatalf("subscribe ack type = %q, want %q", ack.Type, WSTypeResponse)
	}
}

// payloadMap extracts the payload as a generic map.
func payloadMap(t *testing.T, msg WSMessage) map[string]any {
	t.Helper()

	data, err := json.Marshal(msg.Payload)
	if err != nil {
		t.Fatalf("re-marshalling payload: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	return m
}

// ─── Order Event Broadcast Tests ───────────────────────────────────

func TestOrderCreatedBroadcast(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	conn := dialWS(t, ts)
	subscribeWS(t, conn, ChannelOrders)

	body := `{"customerName":"Acme Ltd","productName":"Leaflets","quantity":100,"sheetType":"Fliers"}`
	resp, err := http.Post(ts.URL+"/api/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("creating order: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	msg := readWS(t, conn)
	if msg.Type != WSTypeEvent {
		t.Errorf("type = %q, want %q", msg.Type, WSTypeEvent)
	}
	if msg.Channel != ChannelOrders {
		t.Errorf("channel = %q, want %q", msg.Channel, ChannelOrders)
	}
	if msg.EventType != EventOrderCreated {
		t.Errorf("event type = %q, want %q", msg.EventType, EventOrderCreated)
	}
	if msg.Timestamp == "" {
		t.Error("event should carry a server timestamp")
	}
	if _, err := time.Parse(time.RFC3339, msg.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", msg.Timestamp, err)
	}

	payload := payloadMap(t, msg)
	if payload["message"] == "" || payload["message"] == nil {
		t.Error("event should carry a human-readable message")
	}
	orderPayload, ok := payload["order"].(map[string]any)
	if !ok {
		t.Fatalf("payload order = %T, want object", payload["order"])
	}
	if orderPayload["customerName"] != "Acme Ltd" {
		t.Errorf("broadcast customerName = %v, want Acme Ltd", orderPayload["customerName"])
	}
}

func TestOrderStatusOnPerOrderChannel(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	router := srv.buildRouter()
	o := createTestOrder(t, router, "Acme Ltd")

	conn := dialWS(t, ts)
	subscribeWS(t, conn, OrderChannel(o.OrderID))

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/orders/"+o.OrderID,
		strings.NewReader(`{"status":"Packaging"}`))
	if err != nil {
		t.Fatalf("building update request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("updating order: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}

	msg := readWS(t, conn)
	if msg.Channel != OrderChannel(o.OrderID) {
		t.Errorf("channel = %q, want %q", msg.Channel, OrderChannel(o.OrderID))
	}
	if msg.EventType != EventOrderStatus {
		t.Errorf("event type = %q, want %q", msg.EventType, EventOrderStatus)
	}

	payload := payloadMap(t, msg)
	if payload["status"] != "Packaging" {
		t.Errorf("status = %v, want Packaging", payload["status"])
	}
	if payload["orderId"] != o.OrderID {
		t.Errorf("orderId = %v, want %q", payload["orderId"], o.OrderID)
	}
}

func TestOrderDeletedBroadcast(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	router := srv.buildRouter()
	o := createTestOrder(t, router, "Acme Ltd")

	conn := dialWS(t, ts)
	subscribeWS(t, conn, ChannelOrders)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/orders/"+o.OrderID, nil)
	if err != nil {
		t.Fatalf("building delete request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("deleting order: %v", err)
	}
	resp.Body.Close()

	msg := readWS(t, conn)
	if msg.EventType != EventOrderDeleted {
		t.Errorf("event type = %q, want %q", msg.EventType, EventOrderDeleted)
	}

	// Deletion events carry the identifier only, not a snapshot.
	payload := payloadMap(t, msg)
	if payload["orderId"] != o.OrderID {
		t.Errorf("orderId = %v, want %q", payload["orderId"], o.OrderID)
	}
	if _, hasOrder := payload["order"]; hasOrder {
		t.Error("deletion event should not carry an order snapshot")
	}
}

func TestUnsubscribedClientReceivesNothing(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	conn := dialWS(t, ts)
	// Connected but not subscribed to any channel.

	body := `{"customerName":"Acme Ltd","productName":"Leaflets","quantity":100,"sheetType":"Fliers"}`
	resp, err := http.Post(ts.URL+"/api/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("creating order: %v", err)
	}
	resp.Body.Close()

	if err := conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)); err != nil {
		t.Fatalf("setting read deadline: %v", err)
	}
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Errorf("unsubscribed client received frame: %s", data)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	conn := dialWS(t, ts)
	subscribeWS(t, conn, ChannelOrders)

	unsub := WSMessage{
		Type:    WSTypeUnsubscribe,
		ID:      "unsub-1",
		Payload: WSSubscribePayload{Channels: []string{ChannelOrders}},
	}
	if err := conn.WriteJSON(unsub); err != nil {
		t.Fatalf("sending unsubscribe: %v", err)
	}
	ack := readWS(t, conn)
	if ack.Type != WSTypeResponse {
		t.Fatalf("unsubscribe ack type = %q", ack.Type)
	}

	body := `{"customerName":"Acme Ltd","productName":"Leaflets","quantity":100,"sheetType":"Fliers"}`
	resp, err := http.Post(ts.URL+"/api/orders", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("creating order: %v", err)
	}
	resp.Body.Close()

	if err := conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)); err != nil {
		t.Fatalf("setting read deadline: %v", err)
	}
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Errorf("unsubscribed client received frame: %s", data)
	}
}

// ─── Protocol Tests ────────────────────────────────────────────────

func TestWebSocketPing(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	conn := dialWS(t, ts)

	if err := conn.WriteJSON(WSMessage{Type: WSTypePing, ID: "p1"}); err != nil {
		t.Fatalf("sending ping: %v", err)
	}

	msg := readWS(t, conn)
	if msg.Type != WSTypePong {
		t.Errorf("type = %q, want %q", msg.Type, WSTypePong)
	}
	if msg.ID != "p1" {
		t.Errorf("id = %q, want p1", msg.ID)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	conn := dialWS(t, ts)

	if err := conn.WriteJSON(WSMessage{Type: "teleport", ID: "x"}); err != nil {
		t.Fatalf("sending message: %v", err)
	}

	msg := readWS(t, conn)
	if msg.Type != WSTypeError {
		t.Errorf("type = %q, want %q", msg.Type, WSTypeError)
	}
}

// ─── Hub Unit Tests ────────────────────────────────────────────────

func TestHubBroadcastOnlyToSubscribers(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	subscribed := dialWS(t, ts)
	subscribeWS(t, subscribed, "orders.ORD-11111")

	other := dialWS(t, ts)
	subscribeWS(t, other, "orders.ORD-22222")

	srv.hub.Broadcast("orders.ORD-11111", EventOrderStatus, map[string]string{"status": "Delivery"})

	msg := readWS(t, subscribed)
	if msg.Channel != "orders.ORD-11111" {
		t.Errorf("channel = %q, want orders.ORD-11111", msg.Channel)
	}

	if err := other.SetReadDeadline(time.Now().Add(300 * time.Millisecond)); err != nil {
		t.Fatalf("setting read deadline: %v", err)
	}
	if _, data, err := other.ReadMessage(); err == nil {
		t.Errorf("client on another channel received frame: %s", data)
	}
}

func TestHubClientCount(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	const n = 3
	conns := make([]*websocket.Conn, 0, n)
	for i := 0; i < n; i++ {
		conns = append(conns, dialWS(t, ts))
	}

	// Registration happens in the upgrade handler before pumps start, but
	// give the server a moment to settle.
	deadline := time.Now().Add(wsReadTimeout)
	for srv.hub.ClientCount() != n && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := srv.hub.ClientCount(); got != n {
		t.Fatalf("ClientCount() = %d, want %d", got, n)
	}

	conns[0].Close()
	deadline = time.Now().Add(wsReadTimeout)
	for srv.hub.ClientCount() != n-1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := srv.hub.ClientCount(); got != n-1 {
		t.Errorf("ClientCount() after close = %d, want %d", got, n-1)
	}
}
