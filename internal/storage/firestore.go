package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/foodbridge/dashboard/internal/models"
)

type Client struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Listen opens a snapshot listener on a collection. onNext receives the full,
// ordered document set after every change; onError is called at most once,
// after which the listener is finished. Reconnects inside the watch stream
// are left to the Firestore client. The returned stop function is idempotent.
func (c *Client) Listen(ctx context.Context, collection string, onNext func([]models.RawDocument), onError func(error)) (func(), error) {
	if collection == "" {
		return nil, errors.New("collection name is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	it := c.client.Collection(collection).Snapshots(ctx)

	go func() {
		// Stop must not run concurrently with Next, so only this goroutine calls it.
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled || errors.Is(err, iterator.Done) {
					slog.Debug("Snapshot listener stopped", "collection", collection)
					return
				}
				slog.Error("Snapshot listener failed", "collection", collection, "reason", ClassifyError(err), "error", err)
				onError(err)
				return
			}

			docs, err := readSnapshot(snap)
			if err != nil {
				slog.Error("Failed to read snapshot documents", "collection", collection, "error", err)
				onError(err)
				return
			}
			slog.Debug("Snapshot received", "collection", collection, "count", len(docs), "readTime", snap.ReadTime)
			onNext(docs)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func readSnapshot(snap *firestore.QuerySnapshot) ([]models.RawDocument, error) {
	defer snap.Documents.Stop()

	var docs []models.RawDocument
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate snapshot documents: %w", err)
		}
		docs = append(docs, models.RawDocument{
			ID:   doc.Ref.ID,
			Data: coerceMap(doc.Data()),
		})
	}
	return docs, nil
}

// coerceMap rewrites Firestore values into the plain shapes the projector
// reads. Timestamps become {seconds, nanoseconds} maps.
func coerceMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = coerceValue(v)
	}
	return out
}

func coerceValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return timestampMap(x.Unix(), int64(x.Nanosecond()))
	case *timestamppb.Timestamp:
		if x == nil {
			return nil
		}
		return timestampMap(x.GetSeconds(), int64(x.GetNanos()))
	case *firestore.DocumentRef:
		if x == nil {
			return nil
		}
		return x.Path
	case map[string]any:
		return coerceMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = coerceValue(e)
		}
		return out
	}
	return v
}

func timestampMap(seconds, nanos int64) map[string]any {
	return map[string]any{"seconds": seconds, "nanoseconds": nanos}
}

// ClassifyError gives a short description of a listener failure for logs.
func ClassifyError(err error) string {
	switch status.Code(err) {
	case codes.OK:
		return "ok"
	case codes.PermissionDenied:
		return "permission denied"
	case codes.Unauthenticated:
		return "unauthenticated"
	case codes.Unavailable:
		return "service unavailable"
	case codes.NotFound:
		return "not found"
	case codes.ResourceExhausted:
		return "quota exhausted"
	case codes.DeadlineExceeded:
		return "deadline exceeded"
	case codes.Canceled:
		return "canceled"
	}
	return "unknown"
}
