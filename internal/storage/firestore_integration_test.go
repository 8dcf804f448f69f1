//go:build integration

package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/foodbridge/dashboard/internal/models"
)

// Runs against the Firestore emulator:
//
//	FIRESTORE_EMULATOR_HOST=localhost:8080 go test -tags integration ./internal/storage
func TestIntegration_ListenDeliversFullSnapshots(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := New(ctx, "demo-dashboard")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	collection := "givers_it_" + time.Now().Format("150405.000")
	snapshots := make(chan []models.RawDocument, 16)
	stop, err := c.Listen(ctx, collection, func(docs []models.RawDocument) {
		snapshots <- docs
	}, func(err error) {
		t.Errorf("listener error: %v", err)
	})
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer stop()

	waitFor := func(n int) []models.RawDocument {
		for {
			select {
			case docs := <-snapshots:
				if len(docs) == n {
					return docs
				}
			case <-ctx.Done():
				t.Fatalf("timed out waiting for snapshot with %d docs", n)
			}
		}
	}

	waitFor(0)

	at := time.Unix(1700000000, 0)
	_, err = c.client.Collection(collection).Doc("g1").Set(ctx, map[string]any{"name": "Mdm Tan", "timestamp": at})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	docs := waitFor(1)
	if docs[0].ID != "g1" {
		t.Errorf("ID = %q, want g1", docs[0].ID)
	}
	ts, ok := docs[0].Data["timestamp"].(map[string]any)
	if !ok || ts["seconds"] != int64(1700000000) {
		t.Errorf("timestamp = %#v, want seconds 1700000000", docs[0].Data["timestamp"])
	}
}
