package order

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Logger defines the logging interface used by the Store.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Identifier generation constants.
const (
	// idMin and idSpan define the 5-digit identifier range [10000, 99999].
	idMin  = 10000
	idSpan = 90000

	// deliveryLeadDays is the default delivery schedule offset from the
	// issue date when no schedule is supplied at creation.
	deliveryLeadDays = 7
)

// Store is the exclusive owner of the in-memory order collection.
// All mutations pass through it.
//
// The collection is held newest-first (new orders are prepended). A single
// lock serialises mutations; readers take a shared lock and receive copies,
// so a reader never observes a partially updated order.
//
// The store is constructed once per process and passed explicitly to
// dependents; there is no ambient state.
type Store struct {
	mu     sync.RWMutex
	orders []Order
	logger Logger
}

// NewStore creates an empty order store.
func NewStore() *Store {
	return &Store{
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// ListAll returns all orders sorted by dateIssued descending (newest first).
// The sort is computed fresh on each call and is not persisted back to the
// collection; orders with equal dates keep their existing relative order.
func (s *Store) ListAll() []Order {
	s.mu.RLock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].DateIssued).After(parseDate(out[j].DateIssued))
	})
	return out
}

// GetByID retrieves an order by its exact identifier.
// Returns ErrOrderNotFound if the order does not exist.
func (s *Store) GetByID(orderID string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// FindByCustomer returns all orders whose customer name contains the given
// text, case-insensitively. Results are in document order; no sort guarantee
// beyond the store's current arrangement.
func (s *Store) FindByCustomer(customer string) []Order {
	needle := strings.ToLower(customer)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Order, 0)
	for i := range s.orders {
		if strings.Contains(strings.ToLower(s.orders[i].CustomerName), needle) {
			matches = append(matches, s.orders[i])
		}
	}
	return matches
}

// Create validates the input, materialises a new order and inserts it at the
// front of the collection.
//
// The batch ID is time-based and coarse (not guaranteed unique under rapid
// successive creates). The order ID is generated by repeated random 5-digit
// sampling until an identifier not already present in the store is found;
// ErrIDSpaceExhausted is returned if no identifier remains.
func (s *Store) Create(in CreateInput) (*Order, error) {
	if err := ValidateCreateInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	issued := now.Format(DateFormat)

	schedule := in.DeliverySchedule
	if schedule == "" {
		schedule = now.AddDate(0, 0, deliveryLeadDays).Format(DateFormat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orderID, err := s.generateOrderID()
	if err != nil {
		return nil, err
	}

	o := Order{
		BatchID:          strconv.FormatInt(now.UnixMilli(), 10),
		OrderID:          orderID,
		CustomerName:     in.CustomerName,
		ProductName:      in.ProductName,
		SheetType:        in.SheetType,
		Quantity:         in.Quantity,
		DeliverySchedule: schedule,
		DateIssued:       issued,
		Status:           StatusInProduction,
	}

	// Newest first
	s.orders = append([]Order{o}, s.orders...)

	s.logger.Info("order created", "order_id", o.OrderID, "customer", o.CustomerName)
	return &o, nil
}

// Update merges the supplied patch fields onto an existing order.
// Fields not present in the patch are untouched. Returns the updated order,
// or ErrOrderNotFound if the identifier does not exist.
func (s *Store) Update(orderID string, patch UpdateInput) (*Order, error) {
	if err := ValidateUpdateInput(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderID != orderID {
			continue
		}
		if patch.Status != nil {
			s.orders[i].Status = *patch.Status
		}
		if patch.DeliverySchedule != nil {
			s.orders[i].DeliverySchedule = *patch.DeliverySchedule
		}
		if patch.Quantity != nil {
			s.orders[i].Quantity = *patch.Quantity
		}

		o := s.orders[i]
		s.logger.Info("order updated", "order_id", o.OrderID, "status", o.Status)
		return &o, nil
	}

	return nil, ErrOrderNotFound
}

// Delete removes the matching order.
// Returns true if a removal occurred, false if the identifier was not found.
func (s *Store) Delete(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			s.logger.Info("order deleted", "order_id", orderID)
			return true
		}
	}
	return false
}

// Count returns the number of orders currently held by the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// generateOrderID samples random 5-digit identifiers until it finds one not
// already present. Caller must hold the write lock.
//
// The loop only terminates when a free identifier exists, so the space is
// checked for exhaustion up front. At 90,000 identifiers this guard is
// theoretical.
func (s *Store) generateOrderID() (string, error) {
	if len(s.orders) >= idSpan {
		return "", ErrIDSpaceExhausted
	}

	for {
		candidate := fmt.Sprintf("ORD-%05d", idMin+rand.Intn(idSpan))
		if !s.containsID(candidate) {
			return candidate, nil
		}
	}
}

// containsID reports whether an order ID is present. Caller must hold a lock.
func (s *Store) containsID(orderID string) bool {
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			return true
		}
	}
	return false
}

// parseDate parses a stored calendar date string.
// Unparseable dates sort as the zero time (oldest).
func parseDate(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
