package subscriber

import (
	"context"

	"github.com/foodbridge/dashboard/internal/models"
)

// DocumentStore abstracts the live query API of the document database.
type DocumentStore interface {
	// Listen starts delivering full snapshots of a collection until the
	// returned stop function is called or onError reports a failure.
	Listen(ctx context.Context, collection string, onNext func([]models.RawDocument), onError func(error)) (stop func(), err error)
}

// SnapshotFunc receives the complete current document set of a collection.
type SnapshotFunc func(c models.Collection, docs []models.RawDocument)

// ErrorFunc receives a subscription failure for a collection.
type ErrorFunc func(c models.Collection, err error)
