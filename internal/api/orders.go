package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printdeskhq/printdesk/internal/order"
)

// handleListOrders returns all orders, newest first.
func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListAll())
}

// handleSearchOrders returns orders whose customer name contains the query.
func (s *Server) handleSearchOrders(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customer")
	if customer == "" {
		writeBadRequest(w, "customer query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, s.store.FindByCustomer(customer))
}

// handleGetOrder returns a single order by its ID.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := s.store.GetByID(id)
	if err != nil {
		s.writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// handleCreateOrder creates a new order and broadcasts the creation event.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in order.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	o, err := s.store.Create(in)
	if err != nil {
		s.writeOrderError(w, err)
		return
	}

	s.events.PublishCreated(o)
	writeJSON(w, http.StatusCreated, o)
}

// handleUpdateOrder applies a partial update and broadcasts the update events.
func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch order.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	o, err := s.store.Update(id, patch)
	if err != nil {
		s.writeOrderError(w, err)
		return
	}

	s.events.PublishUpdated(o)
	writeJSON(w, http.StatusOK, o)
}

// handleDeleteOrder removes an order and broadcasts the deletion event.
func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.store.Delete(id) {
		writeNotFound(w, "order not found")
		return
	}

	s.events.PublishDeleted(id)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Order deleted successfully",
	})
}

// writeOrderError maps order store errors to HTTP responses.
func (s *Server) writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		writeNotFound(w, "order not found")
	case errors.Is(err, order.ErrIDSpaceExhausted):
		writeConflict(w, "order ID space exhausted")
	case errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidSheetType),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidCustomerName),
		errors.Is(err, order.ErrInvalidProductName),
		errors.Is(err, order.ErrInvalidDeliveryDate):
		writeValidationError(w, err.Error())
	default:
		s.logger.Error("order operation failed", "error", err)
		writeInternalError(w, "internal server error")
	}
}
