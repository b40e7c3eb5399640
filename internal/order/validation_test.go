package order

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		if err := ValidateStatus(status); err != nil {
			t.Errorf("ValidateStatus(%q) error: %v", status, err)
		}
	}

	invalid := []Status{"", "in production", "Shipped", "IN PRINTING"}
	for _, status := range invalid {
		if err := ValidateStatus(status); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ValidateStatus(%q) error = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestValidateSheetType(t *testing.T) {
	for _, st := range AllSheetTypes() {
		if err := ValidateSheetType(st); err != nil {
			t.Errorf("ValidateSheetType(%q) error: %v", st, err)
		}
	}

	invalid := []SheetType{"", "fliers", "Cardstock"}
	for _, st := range invalid {
		if err := ValidateSheetType(st); !errors.Is(err, ErrInvalidSheetType) {
			t.Errorf("ValidateSheetType(%q) error = %v, want ErrInvalidSheetType", st, err)
		}
	}
}

func TestValidateCreateInputNameLength(t *testing.T) {
	long := strings.Repeat("x", maxNameLength+1)

	in := CreateInput{CustomerName: long, ProductName: "P", Quantity: 1, SheetType: SheetFliers}
	if err := ValidateCreateInput(in); !errors.Is(err, ErrInvalidCustomerName) {
		t.Errorf("overlong customer name error = %v, want ErrInvalidCustomerName", err)
	}

	in = CreateInput{CustomerName: "A", ProductName: long, Quantity: 1, SheetType: SheetFliers}
	if err := ValidateCreateInput(in); !errors.Is(err, ErrInvalidProductName) {
		t.Errorf("overlong product name error = %v, want ErrInvalidProductName", err)
	}
}

func TestValidateUpdateInput(t *testing.T) {
	goodStatus := StatusPackaging
	badStatus := Status("Misplaced")
	goodQty := 5
	zeroQty := 0
	goodDate := "2026-10-01"
	badDate := "01/10/2026"

	tests := []struct {
		name    string
		in      UpdateInput
		wantErr error
	}{
		{"empty patch", UpdateInput{}, nil},
		{"valid status", UpdateInput{Status: &goodStatus}, nil},
		{"invalid status", UpdateInput{Status: &badStatus}, ErrInvalidStatus},
		{"valid quantity", UpdateInput{Quantity: &goodQty}, nil},
		{"zero quantity", UpdateInput{Quantity: &zeroQty}, ErrInvalidQuantity},
		{"valid delivery date", UpdateInput{DeliverySchedule: &goodDate}, nil},
		{"non-ISO delivery date", UpdateInput{DeliverySchedule: &badDate}, ErrInvalidDeliveryDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdateInput(tt.in)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateUpdateInput() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUpdateInput() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
