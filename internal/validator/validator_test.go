package validator

import (
	"strings"
	"testing"

	"github.com/foodbridge/dashboard/internal/models"
)

func TestValidator_ValidateStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		record  any
		wantErr string
	}{
		{
			name:   "Valid Giver",
			record: models.Giver{Name: "Ah Hock", Cooked: true, DietType: "halal"},
		},
		{
			name:    "Giver Missing Name",
			record:  models.Giver{DietType: "vegetarian"},
			wantErr: "Name is required",
		},
		{
			name:   "Valid Taker",
			record: models.Taker{Name: "Siti", FamilyPax: floatPtr(4), HouseIncome: floatPtr(2100)},
		},
		{
			name:    "Negative Family Size",
			record:  models.Taker{Name: "Siti", FamilyPax: floatPtr(-1)},
			wantErr: "FamilyPax must be >= 0",
		},
		{
			name:    "Negative Income",
			record:  models.Taker{Name: "Siti", HouseIncome: floatPtr(-5)},
			wantErr: "HouseIncome must be >= 0",
		},
		{
			name:    "Delivery Missing Name And Role",
			record:  models.Delivery{OrderSummary: "2 boxes"},
			wantErr: "NameAndRole is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.record)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateStruct() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateStruct() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
