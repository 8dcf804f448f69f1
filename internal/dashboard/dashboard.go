package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/foodbridge/dashboard/internal/models"
	"github.com/foodbridge/dashboard/internal/projector"
	"github.com/foodbridge/dashboard/internal/subscriber"
)

// ErrInvalidPage is returned by SetPage for page numbers below 1.
var ErrInvalidPage = errors.New("page must be at least 1")

// Dashboard owns the working set of every subscribed collection and the
// shared page position. Working sets are replaced wholesale by each snapshot.
type Dashboard struct {
	sub         *subscriber.Subscriber
	projector   *projector.Projector
	collections []models.Collection
	pageSize    int

	mu       sync.RWMutex
	sets     map[models.Collection][]models.DisplayRecord
	lastErr  map[models.Collection]error
	page     int
	started  bool
	handles  []*subscriber.Handle
	onChange []func(models.Collection)
}

func New(sub *subscriber.Subscriber, collections []models.Collection, pageSize int) *Dashboard {
	return &Dashboard{
		sub:         sub,
		projector:   projector.New(),
		collections: collections,
		pageSize:    pageSize,
		sets:        make(map[models.Collection][]models.DisplayRecord),
		lastErr:     make(map[models.Collection]error),
		page:        1,
	}
}

// OnChange registers fn to run after a collection's working set changes or
// its subscription fails. Register hooks before Start.
func (d *Dashboard) OnChange(fn func(models.Collection)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = append(d.onChange, fn)
}

// Start subscribes to every configured collection.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return errors.New("dashboard already started")
	}
	d.started = true
	d.mu.Unlock()

	handles, err := d.sub.SubscribeAll(ctx, d.collections, d.applySnapshot, d.recordError)
	if err != nil {
		d.mu.Lock()
		d.started = false
		d.mu.Unlock()
		return fmt.Errorf("failed to start dashboard subscriptions: %w", err)
	}

	d.mu.Lock()
	d.handles = handles
	d.mu.Unlock()
	slog.Info("Dashboard subscriptions started", "collections", d.collections, "pageSize", d.pageSize)
	return nil
}

// Close releases every subscription. Later calls are no-ops.
func (d *Dashboard) Close() {
	d.mu.Lock()
	handles := d.handles
	d.mu.Unlock()

	for _, h := range handles {
		h.Unsubscribe()
	}
}

func (d *Dashboard) applySnapshot(c models.Collection, docs []models.RawDocument) {
	records := d.projector.NormalizeAll(c, docs)

	d.mu.Lock()
	d.sets[c] = records
	delete(d.lastErr, c)
	hooks := d.onChange
	d.mu.Unlock()

	slog.Info("Snapshot applied", "collection", c, "count", len(records))
	for _, fn := range hooks {
		fn(c)
	}
}

// recordError keeps the last-known working set and remembers the failure
// so the view can show it.
func (d *Dashboard) recordError(c models.Collection, err error) {
	d.mu.Lock()
	d.lastErr[c] = err
	hooks := d.onChange
	d.mu.Unlock()

	slog.Error("Error fetching documents", "collection", c, "error", err)
	for _, fn := range hooks {
		fn(c)
	}
}

// SetPage moves the shared page position. Pages past the end are allowed
// and render empty.
func (d *Dashboard) SetPage(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, n)
	}
	d.mu.Lock()
	d.page = n
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) Page() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.page
}

func (d *Dashboard) PageSize() int { return d.pageSize }

// Records returns the full working set for a collection.
func (d *Dashboard) Records(c models.Collection) []models.DisplayRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sets[c]
}

// LastError returns the most recent subscription failure for c, cleared by
// the next successful snapshot.
func (d *Dashboard) LastError(c models.Collection) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr[c]
}
