package order

import (
	"fmt"
	"time"
)

// maxNameLength bounds free-text labels to keep payloads sane.
const maxNameLength = 200

// Pre-computed validation sets for O(1) lookups.
var (
	validStatuses   map[Status]struct{}
	validSheetTypes map[SheetType]struct{}
)

func init() {
	validStatuses = make(map[Status]struct{}, len(AllStatuses()))
	for _, s := range AllStatuses() {
		validStatuses[s] = struct{}{}
	}

	validSheetTypes = make(map[SheetType]struct{}, len(AllSheetTypes()))
	for _, t := range AllSheetTypes() {
		validSheetTypes[t] = struct{}{}
	}
}

// ValidateStatus checks that a status is one of the defined production stages.
func ValidateStatus(s Status) error {
	if _, ok := validStatuses[s]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return nil
}

// ValidateSheetType checks that a sheet type is in the closed set.
func ValidateSheetType(t SheetType) error {
	if _, ok := validSheetTypes[t]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSheetType, t)
	}
	return nil
}

// ValidateCreateInput checks the fields supplied at order creation.
// Returns an error describing the first validation failure found.
func ValidateCreateInput(in CreateInput) error {
	if in.CustomerName == "" || len(in.CustomerName) > maxNameLength {
		return ErrInvalidCustomerName
	}
	if in.ProductName == "" || len(in.ProductName) > maxNameLength {
		return ErrInvalidProductName
	}
	if in.Quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, in.Quantity)
	}
	if err := ValidateSheetType(in.SheetType); err != nil {
		return err
	}
	if in.DeliverySchedule != "" {
		if err := validateDate(in.DeliverySchedule); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdateInput checks the fields present in a partial patch.
// Nil fields are skipped.
func ValidateUpdateInput(in UpdateInput) error {
	if in.Status != nil {
		if err := ValidateStatus(*in.Status); err != nil {
			return err
		}
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, *in.Quantity)
	}
	if in.DeliverySchedule != nil {
		if err := validateDate(*in.DeliverySchedule); err != nil {
			return err
		}
	}
	return nil
}

// validateDate checks that a date string is a valid calendar date.
func validateDate(s string) error {
	if _, err := time.Parse(DateFormat, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDeliveryDate, s)
	}
	return nil
}
