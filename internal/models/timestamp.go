package models

// InvalidTimestamp is shown in place of a date that could not be read.
const InvalidTimestamp = "Invalid timestamp"

// Timestamp mirrors Firestore's point-in-time representation.
type Timestamp struct {
	Seconds     int64 `firestore:"seconds" json:"seconds"`
	Nanoseconds int64 `firestore:"nanoseconds" json:"nanoseconds"`
}

// Millis returns milliseconds since the Unix epoch. Sub-millisecond
// precision is dropped.
func (t Timestamp) Millis() int64 {
	return t.Seconds*1000 + t.Nanoseconds/1_000_000
}
