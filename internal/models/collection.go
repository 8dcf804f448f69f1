package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCollection is returned when a collection name is not one the dashboard renders.
var ErrUnknownCollection = errors.New("unknown collection")

// Collection names a Firestore collection the dashboard subscribes to.
type Collection string

const (
	Givers     Collection = "givers"
	Takers     Collection = "takers"
	Deliverers Collection = "deliverers"
	Deliveries Collection = "deliveries"
	Volunteers Collection = "volunteers"
)

// DefaultCollections is the paginated four-column layout.
var DefaultCollections = []Collection{Givers, Takers, Deliverers, Deliveries}

// AlternateCollections is the older three-column layout with volunteers.
var AlternateCollections = []Collection{Givers, Takers, Volunteers}

// Title is the column heading shown on the dashboard.
func (c Collection) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c Collection) Known() bool {
	switch c {
	case Givers, Takers, Deliverers, Deliveries, Volunteers:
		return true
	}
	return false
}

// ParseCollections parses a comma separated list of collection names.
// Empty entries are skipped and duplicates are rejected.
func ParseCollections(s string) ([]Collection, error) {
	var out []Collection
	seen := make(map[Collection]bool)
	for _, part := range strings.Split(s, ",") {
		name := Collection(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !name.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate collection %q", name)
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no collections in %q", s)
	}
	return out, nil
}
