package order

import "errors"

// Domain errors for the order package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, order.ErrOrderNotFound) {
//	    // handle not found case
//	}
var (
	// ErrOrderNotFound is returned when an order ID does not exist.
	ErrOrderNotFound = errors.New("order: not found")

	// ErrInvalidQuantity is returned when quantity is below 1.
	ErrInvalidQuantity = errors.New("order: quantity must be at least 1")

	// ErrInvalidSheetType is returned when a sheet type is not recognised.
	ErrInvalidSheetType = errors.New("order: invalid sheet type")

	// ErrInvalidStatus is returned when a status value is not a defined
	// production stage.
	ErrInvalidStatus = errors.New("order: invalid status")

	// ErrInvalidCustomerName is returned when the customer name is empty.
	ErrInvalidCustomerName = errors.New("order: customer name is required")

	// ErrInvalidProductName is returned when the product name is empty.
	ErrInvalidProductName = errors.New("order: product name is required")

	// ErrInvalidDeliveryDate is returned when a supplied delivery schedule
	// is not a valid calendar date.
	ErrInvalidDeliveryDate = errors.New("order: invalid delivery schedule date")

	// ErrIDSpaceExhausted is returned when no unused ORD-NNNNN identifier
	// remains. Practically unreachable at the identifier's cardinality.
	ErrIDSpaceExhausted = errors.New("order: identifier space exhausted")
)
