// Package api provides the HTTP REST API and WebSocket server for PrintDesk.
//
// It exposes order management operations, real-time order event broadcast,
// and the authentication endpoints to front-of-house clients (dashboard,
// production floor displays).
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
