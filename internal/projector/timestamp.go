package projector

import (
	"encoding/json"
	"log/slog"
	"math"
	"time"
	_ "time/tzdata"

	"github.com/foodbridge/dashboard/internal/models"
)

// DisplayZone and DateLayout are fixed: every date on the dashboard is shown
// in Singapore time using US English month names.
const (
	DisplayZone = "Asia/Singapore"
	DateLayout  = "January 2, 2006 at 3:04:05 PM"
)

var displayLocation = mustLoadLocation(DisplayZone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("projector: load " + name + ": " + err.Error())
	}
	return loc
}

// FormatTimestamp renders a stored timestamp for display. It never fails:
// anything without a readable seconds value comes back as
// models.InvalidTimestamp and is logged.
func FormatTimestamp(v any) string {
	ts, ok := ToTimestamp(v)
	if !ok {
		slog.Error("Timestamp field missing or invalid", "timestamp", v)
		return models.InvalidTimestamp
	}
	return time.UnixMilli(ts.Millis()).In(displayLocation).Format(DateLayout)
}

// Firestore timestamps cover 0001-01-01T00:00:00Z through 9999-12-31T23:59:59Z.
const (
	minSeconds = -62135596800
	maxSeconds = 253402300799
)

// ToTimestamp reads the {seconds, nanoseconds} shape out of the value types
// a document field can hold. Nanoseconds default to zero. Seconds outside
// the range Firestore can store are rejected.
func ToTimestamp(v any) (models.Timestamp, bool) {
	ts, ok := decodeTimestamp(v)
	if !ok || ts.Seconds < minSeconds || ts.Seconds > maxSeconds {
		return models.Timestamp{}, false
	}
	return ts, true
}

func decodeTimestamp(v any) (models.Timestamp, bool) {
	switch x := v.(type) {
	case models.Timestamp:
		return x, true
	case *models.Timestamp:
		if x == nil {
			return models.Timestamp{}, false
		}
		return *x, true
	case time.Time:
		if x.IsZero() {
			return models.Timestamp{}, false
		}
		return models.Timestamp{Seconds: x.Unix(), Nanoseconds: int64(x.Nanosecond())}, true
	case map[string]any:
		secs, ok := toInt64(x["seconds"])
		if !ok {
			return models.Timestamp{}, false
		}
		nanos, _ := toInt64(x["nanoseconds"])
		return models.Timestamp{Seconds: secs, Nanoseconds: nanos}, true
	}
	return models.Timestamp{}, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if math.IsNaN(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return toInt64(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toInt64(f)
	}
	return 0, false
}
