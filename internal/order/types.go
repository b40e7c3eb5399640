package order

import "time"

// Status represents the production stage of an order.
type Status string

// Production stages. The nominal pipeline runs In Production -> In Printing ->
// In Binding -> Packaging -> Delivery, but updates may set any stage in any
// order; no transition sequence is enforced.
const (
	StatusInProduction Status = "In Production"
	StatusInPrinting   Status = "In Printing"
	StatusInBinding    Status = "In Binding"
	StatusPackaging    Status = "Packaging"
	StatusDelivery     Status = "Delivery"
)

// AllStatuses returns every valid production stage, in pipeline order.
func AllStatuses() []Status {
	return []Status{
		StatusInProduction,
		StatusInPrinting,
		StatusInBinding,
		StatusPackaging,
		StatusDelivery,
	}
}

// SheetType represents the category of printed material.
type SheetType string

// Sheet types.
const (
	SheetFliers  SheetType = "Fliers"
	SheetOMR     SheetType = "OMR Sheets"
	SheetJotters SheetType = "Jotters"
)

// AllSheetTypes returns every valid sheet type.
func AllSheetTypes() []SheetType {
	return []SheetType{SheetFliers, SheetOMR, SheetJotters}
}

// DateFormat is the calendar date format used for dateIssued and
// deliverySchedule fields ("2006-01-02").
const DateFormat = time.DateOnly

// Order is a print job record tracked through production stages.
type Order struct {
	// BatchID identifies the creation batch. It is time-based and coarse:
	// two orders created within the same millisecond can share a batch ID.
	// It is a creation marker, not an identity field.
	BatchID string `json:"batchId"`

	// OrderID is the unique human-readable identifier, format ORD-NNNNN.
	OrderID string `json:"orderId"`

	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	SheetType    SheetType `json:"sheetType"`
	Quantity     int       `json:"quantity"`

	// DeliverySchedule is the expected delivery date. Defaults to seven
	// calendar days after DateIssued when not supplied at creation.
	DeliverySchedule string `json:"deliverySchedule"`

	// DateIssued is set at creation and immutable thereafter.
	DateIssued string `json:"dateIssued"`

	Status Status `json:"status"`
}

// CreateInput carries the fields a caller supplies when creating an order.
type CreateInput struct {
	CustomerName     string    `json:"customerName"`
	ProductName      string    `json:"productName"`
	Quantity         int       `json:"quantity"`
	SheetType        SheetType `json:"sheetType"`
	DeliverySchedule string    `json:"deliverySchedule,omitempty"`
}

// UpdateInput is a partial patch for an existing order.
// Nil fields are left untouched.
type UpdateInput struct {
	Status           *Status `json:"status,omitempty"`
	DeliverySchedule *string `json:"deliverySchedule,omitempty"`
	Quantity         *int    `json:"quantity,omitempty"`
}
