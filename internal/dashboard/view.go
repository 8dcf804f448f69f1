package dashboard

import (
	"github.com/foodbridge/dashboard/internal/models"
	"github.com/foodbridge/dashboard/internal/projector"
)

// Card is one record as shown on the dashboard.
type Card struct {
	ID    string        `json:"id"`
	Lines []models.Line `json:"lines"`
}

// Column is one collection's visible page.
type Column struct {
	Collection models.Collection `json:"collection"`
	Title      string            `json:"title"`
	Total      int               `json:"total"`
	PageCount  int               `json:"pageCount"`
	Pages      []int             `json:"pages"`
	Cards      []Card            `json:"cards"`
	Error      string            `json:"error,omitempty"`
}

// View is everything needed to render the dashboard once.
type View struct {
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Columns  []Column `json:"columns"`
}

// View projects the current page of every working set. Page counts are
// derived from the working set sizes at the time of the call.
func (d *Dashboard) View() View {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v := View{Page: d.page, PageSize: d.pageSize}
	for _, c := range d.collections {
		records := d.sets[c]
		count := projector.PageCount(len(records), d.pageSize)

		col := Column{
			Collection: c,
			Title:      c.Title(),
			Total:      len(records),
			PageCount:  count,
			Pages:      make([]int, count),
			Cards:      []Card{},
		}
		for i := range col.Pages {
			col.Pages[i] = i + 1
		}
		for _, r := range projector.Paginate(records, d.page, d.pageSize) {
			col.Cards = append(col.Cards, Card{ID: r.ID, Lines: r.Lines()})
		}
		if err := d.lastErr[c]; err != nil {
			col.Error = err.Error()
		}
		v.Columns = append(v.Columns, col)
	}
	return v
}
