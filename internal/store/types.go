package store

import "time"

// SnapshotRow is the latest observation for one gym, as returned by
// CurrentSnapshot.
type SnapshotRow struct {
	GymID      int64
	ObservedAt time.Time
	Count      int
	Ratio      float64
	Percentage float64
}
