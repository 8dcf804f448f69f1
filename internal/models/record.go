package models

import (
	"fmt"
	"strconv"
)

// RawDocument is a document as delivered by the store: an identifier plus
// whatever fields the document happens to carry.
type RawDocument struct {
	ID   string
	Data map[string]any
}

// Line is one labelled value on a dashboard card.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details is the typed view of a document for one collection.
type Details interface {
	Role() Collection
	Lines() []Line
}

// DisplayRecord is a normalized document ready to render.
type DisplayRecord struct {
	ID            string         `json:"id"`
	Collection    Collection     `json:"collection"`
	Fields        map[string]any `json:"fields"`
	FormattedDate string         `json:"formattedDate"`
	Details       Details        `json:"-"`
}

// Lines returns the card lines for the record, ending with the formatted date
// for collections that show one.
func (r DisplayRecord) Lines() []Line {
	if r.Details == nil {
		return nil
	}
	lines := r.Details.Lines()
	if r.Collection != Deliveries {
		lines = append(lines, Line{Label: "Formatted Date", Value: r.FormattedDate})
	}
	return lines
}

type Giver struct {
	Name     string `validate:"required"`
	Cooked   bool
	DietType string
	ExpDate  string
	Type     string
}

func (Giver) Role() Collection { return Givers }

func (g Giver) Lines() []Line {
	return []Line{
		{Label: "Name", Value: g.Name},
		{Label: "Cooked", Value: yesNo(g.Cooked)},
		{Label: "Diet Type", Value: g.DietType},
		{Label: "Exp Date", Value: g.ExpDate},
		{Label: "Type", Value: g.Type},
	}
}

type Taker struct {
	Name        string   `validate:"required"`
	DietReq     string
	FamilyPax   *float64 `validate:"omitempty,gte=0"`
	HouseIncome *float64 `validate:"omitempty,gte=0"`
	PlanType    string
}

func (Taker) Role() Collection { return Takers }

func (t Taker) Lines() []Line {
	var pax, income string
	if t.FamilyPax != nil {
		pax = strconv.FormatFloat(*t.FamilyPax, 'f', -1, 64)
	}
	if t.HouseIncome != nil {
		income = "$" + strconv.FormatFloat(*t.HouseIncome, 'f', -1, 64)
	}
	return []Line{
		{Label: "Name", Value: t.Name},
		{Label: "Diet Req", Value: t.DietReq},
		{Label: "Family Pax", Value: pax},
		{Label: "House Income", Value: income},
		{Label: "Plan Type", Value: t.PlanType},
	}
}

type Deliverer struct {
	Name     string `validate:"required"`
	RoleName string
}

func (Deliverer) Role() Collection { return Deliverers }

func (d Deliverer) Lines() []Line {
	return []Line{
		{Label: "Name", Value: d.Name},
		{Label: "Role", Value: d.RoleName},
	}
}

type Delivery struct {
	NameAndRole  string `validate:"required"`
	OrderSummary string
}

func (Delivery) Role() Collection { return Deliveries }

func (d Delivery) Lines() []Line {
	return []Line{
		{Label: "Name and Role", Value: d.NameAndRole},
		{Label: "Order Summary", Value: d.OrderSummary},
	}
}

type Volunteer struct {
	Name     string `validate:"required"`
	RoleName string
}

func (Volunteer) Role() Collection { return Volunteers }

func (v Volunteer) Lines() []Line {
	return []Line{
		{Label: "Name", Value: v.Name},
		{Label: "Role", Value: v.RoleName},
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// String renders an arbitrary field value the way a card prints it. Missing
// values print as the empty string.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
