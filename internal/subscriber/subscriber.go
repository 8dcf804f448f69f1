package subscriber

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/foodbridge/dashboard/internal/models"
)

// Subscriber keeps live subscriptions against a DocumentStore. Deliveries
// from every subscription are serialized: at most one onNext or onError
// callback runs at a time, across all collections.
type Subscriber struct {
	store DocumentStore

	// deliver is held for the duration of every callback.
	deliver sync.Mutex
}

func New(store DocumentStore) *Subscriber {
	return &Subscriber{store: store}
}

// Handle is one live subscription. Release it with Unsubscribe.
type Handle struct {
	id         string
	collection models.Collection
	sub        *Subscriber
	stop       func()
	closed     atomic.Bool
	once       sync.Once
}

func (h *Handle) ID() string                    { return h.id }
func (h *Handle) Collection() models.Collection { return h.collection }
func (h *Handle) Active() bool                  { return !h.closed.Load() }

// Unsubscribe stops delivery. It is safe to call more than once. When it
// returns, no callback for this handle is running and none will run again.
// It must not be called from inside one of the handle's own callbacks.
func (h *Handle) Unsubscribe() {
	h.once.Do(func() {
		h.closed.Store(true)
		// Wait out a delivery that passed the closed check before we set it.
		h.sub.deliver.Lock()
		h.sub.deliver.Unlock()
		if h.stop != nil {
			h.stop()
		}
		slog.Info("Unsubscribed", "collection", h.collection, "handle", h.id)
	})
}

// Subscribe opens one subscription. onNext is called with the full document
// set on the initial load and after every change; onError is called if the
// store reports a failure. Failures are not retried.
func (s *Subscriber) Subscribe(ctx context.Context, c models.Collection, onNext SnapshotFunc, onError ErrorFunc) (*Handle, error) {
	h := &Handle{
		id:         uuid.NewString(),
		collection: c,
		sub:        s,
	}

	next := func(docs []models.RawDocument) {
		s.deliver.Lock()
		defer s.deliver.Unlock()
		if h.closed.Load() {
			slog.Debug("Dropping snapshot for closed subscription", "collection", c, "handle", h.id)
			return
		}
		onNext(c, docs)
	}
	fail := func(err error) {
		s.deliver.Lock()
		defer s.deliver.Unlock()
		if h.closed.Load() {
			return
		}
		slog.Error("Subscription error", "collection", c, "handle", h.id, "error", err)
		if onError != nil {
			onError(c, err)
		}
	}

	stop, err := s.store.Listen(ctx, string(c), next, fail)
	if err != nil {
		h.closed.Store(true)
		return nil, fmt.Errorf("subscribe to %s: %w", c, err)
	}
	h.stop = stop
	slog.Info("Subscribed", "collection", c, "handle", h.id)
	return h, nil
}

// SubscribeAll opens one subscription per collection. If any of them cannot
// be opened, the ones that were opened are released and the error returned.
func (s *Subscriber) SubscribeAll(ctx context.Context, collections []models.Collection, onNext SnapshotFunc, onError ErrorFunc) ([]*Handle, error) {
	handles := make([]*Handle, len(collections))

	var g errgroup.Group
	for i, c := range collections {
		g.Go(func() error {
			h, err := s.Subscribe(ctx, c, onNext, onError)
			if err != nil {
				return err
			}
			handles[i] = h
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, h := range handles {
			if h != nil {
				h.Unsubscribe()
			}
		}
		return nil, err
	}
	return handles, nil
}
