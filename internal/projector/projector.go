package projector

import (
	"log/slog"
	"maps"

	"github.com/foodbridge/dashboard/internal/models"
	"github.com/foodbridge/dashboard/internal/validator"
)

// timestampField holds the record's creation time in every collection.
const timestampField = "timestamp"

// Projector turns raw documents into display records.
type Projector struct {
	validator *validator.Validator
}

func New() *Projector {
	return &Projector{validator: validator.New()}
}

// Normalize builds the display record for one document. It never fails;
// missing or malformed fields surface as empty values or
// models.InvalidTimestamp and are logged.
func (p *Projector) Normalize(c models.Collection, doc models.RawDocument) models.DisplayRecord {
	slog.Debug("Normalizing document", "collection", c, "id", doc.ID, "data", doc.Data)

	fields := maps.Clone(doc.Data)
	if fields == nil {
		fields = map[string]any{}
	}

	rec := models.DisplayRecord{
		ID:            doc.ID,
		Collection:    c,
		Fields:        fields,
		FormattedDate: FormatTimestamp(fields[timestampField]),
		Details:       decodeDetails(c, fields),
	}

	if rec.Details != nil {
		if err := p.validator.ValidateStruct(rec.Details); err != nil {
			slog.Warn("Document failed validation", "collection", c, "id", doc.ID, "error", err)
		}
	}
	return rec
}

// NormalizeAll normalizes a full snapshot, preserving its order.
func (p *Projector) NormalizeAll(c models.Collection, docs []models.RawDocument) []models.DisplayRecord {
	out := make([]models.DisplayRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, p.Normalize(c, doc))
	}
	return out
}

func decodeDetails(c models.Collection, f map[string]any) models.Details {
	switch c {
	case models.Givers:
		cooked, _ := f["cooked"].(bool)
		return models.Giver{
			Name:     models.String(f["name"]),
			Cooked:   cooked,
			DietType: models.String(f["diet-type"]),
			ExpDate:  FormatTimestamp(f["expdate"]),
			Type:     models.String(f["type"]),
		}
	case models.Takers:
		t := models.Taker{
			Name:     models.String(f["nameTaker"]),
			DietReq:  models.String(f["dietReq"]),
			PlanType: models.String(f["planType"]),
		}
		if v, ok := toFloat64(f["familyPax"]); ok {
			t.FamilyPax = &v
		}
		if v, ok := toFloat64(f["houseIncome"]); ok {
			t.HouseIncome = &v
		}
		return t
	case models.Deliverers:
		return models.Deliverer{
			Name:     models.String(f["nameDeliverer"]),
			RoleName: models.String(f["role"]),
		}
	case models.Deliveries:
		return models.Delivery{
			NameAndRole:  models.String(f["nameAndRole"]),
			OrderSummary: models.String(f["orderSummary"]),
		}
	case models.Volunteers:
		return models.Volunteer{
			Name:     models.String(f["name"]),
			RoleName: models.String(f["role"]),
		}
	}
	slog.Warn("No record layout for collection", "collection", c)
	return nil
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}
