package projector

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/foodbridge/dashboard/internal/models"
)

var golden = map[string]any{"seconds": int64(1700000000), "nanoseconds": int64(0)}

const goldenText = "November 15, 2023 at 6:13:20 AM"

func TestNormalize_Giver(t *testing.T) {
	p := New()
	doc := models.RawDocument{
		ID: "g1",
		Data: map[string]any{
			"name":      "Mdm Tan",
			"cooked":    true,
			"diet-type": "halal",
			"expdate":   map[string]any{"seconds": int64(1700038800)},
			"type":      "rice",
			"timestamp": golden,
		},
	}

	rec := p.Normalize(models.Givers, doc)

	if rec.ID != "g1" || rec.Collection != models.Givers {
		t.Errorf("identity = (%q, %q), want (g1, givers)", rec.ID, rec.Collection)
	}
	if rec.FormattedDate != goldenText {
		t.Errorf("FormattedDate = %q, want %q", rec.FormattedDate, goldenText)
	}
	want := []models.Line{
		{Label: "Name", Value: "Mdm Tan"},
		{Label: "Cooked", Value: "Yes"},
		{Label: "Diet Type", Value: "halal"},
		{Label: "Exp Date", Value: "November 15, 2023 at 5:00:00 PM"},
		{Label: "Type", Value: "rice"},
		{Label: "Formatted Date", Value: goldenText},
	}
	if diff := cmp.Diff(want, rec.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Fields["diet-type"]; got != "halal" {
		t.Errorf("Fields[diet-type] = %v, want halal", got)
	}
}

func TestNormalize_CopiesFields(t *testing.T) {
	p := New()
	data := map[string]any{"nameTaker": "Raj", "timestamp": golden}
	rec := p.Normalize(models.Takers, models.RawDocument{ID: "t1", Data: data})

	data["nameTaker"] = "changed"
	if rec.Fields["nameTaker"] != "Raj" {
		t.Errorf("display record shares field map with raw document")
	}
}

func TestNormalize_MissingTimestamp(t *testing.T) {
	p := New()
	tests := []struct {
		name string
		data map[string]any
	}{
		{name: "Nil data", data: nil},
		{name: "No timestamp", data: map[string]any{"nameTaker": "Raj"}},
		{name: "Timestamp without seconds", data: map[string]any{"timestamp": map[string]any{"nanoseconds": int64(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Normalize(models.Takers, models.RawDocument{ID: "t", Data: tt.data})
			if rec.FormattedDate != models.InvalidTimestamp {
				t.Errorf("FormattedDate = %q, want %q", rec.FormattedDate, models.InvalidTimestamp)
			}
			if rec.Fields == nil {
				t.Error("Fields should never be nil")
			}
		})
	}
}

func TestNormalize_TakerOptionalFields(t *testing.T) {
	p := New()
	rec := p.Normalize(models.Takers, models.RawDocument{
		ID: "t1",
		Data: map[string]any{
			"nameTaker":   "Raj",
			"dietReq":     "vegetarian",
			"familyPax":   int64(5),
			"houseIncome": float64(1850.5),
			"timestamp":   golden,
		},
	})
	want := []models.Line{
		{Label: "Name", Value: "Raj"},
		{Label: "Diet Req", Value: "vegetarian"},
		{Label: "Family Pax", Value: "5"},
		{Label: "House Income", Value: "$1850.5"},
		{Label: "Plan Type", Value: ""},
		{Label: "Formatted Date", Value: goldenText},
	}
	if diff := cmp.Diff(want, rec.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}

	empty := p.Normalize(models.Takers, models.RawDocument{ID: "t2"})
	for _, line := range empty.Lines()[:5] {
		if line.Value != "" {
			t.Errorf("missing field %s rendered as %q, want empty", line.Label, line.Value)
		}
	}
}

func TestNormalize_FractionalFamilyPax(t *testing.T) {
	p := New()
	rec := p.Normalize(models.Takers, models.RawDocument{
		ID:   "t3",
		Data: map[string]any{"nameTaker": "Lim", "familyPax": float64(2.5), "timestamp": golden},
	})
	if got := rec.Lines()[2]; got.Label != "Family Pax" || got.Value != "2.5" {
		t.Errorf("Family Pax line = %+v, want 2.5", got)
	}
}

func TestNormalize_DeliveryHasNoDateLine(t *testing.T) {
	p := New()
	rec := p.Normalize(models.Deliveries, models.RawDocument{
		ID:   "d1",
		Data: map[string]any{"nameAndRole": "Ali (driver)", "orderSummary": "3 trays"},
	})
	want := []models.Line{
		{Label: "Name and Role", Value: "Ali (driver)"},
		{Label: "Order Summary", Value: "3 trays"},
	}
	if diff := cmp.Diff(want, rec.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	p := New()
	docs := []models.RawDocument{
		{ID: "c", Data: map[string]any{"nameDeliverer": "C"}},
		{ID: "a", Data: map[string]any{"nameDeliverer": "A"}},
		{ID: "b", Data: map[string]any{"nameDeliverer": "B"}},
	}
	recs := p.NormalizeAll(models.Deliverers, docs)
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_UnknownCollection(t *testing.T) {
	p := New()
	rec := p.Normalize(models.Collection("pantries"), models.RawDocument{ID: "x"})
	if rec.Details != nil {
		t.Errorf("Details = %#v, want nil for unknown collection", rec.Details)
	}
	if rec.Lines() != nil {
		t.Errorf("Lines() = %v, want nil", rec.Lines())
	}
}
