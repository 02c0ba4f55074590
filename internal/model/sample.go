package model

import "time"

// OccupancySample is one raw observation written by the external ingestion
// process. Samples are immutable once written; this service never updates or
// deletes them.
type OccupancySample struct {
	ID         int64     `gorm:"autoIncrement;primaryKey"`
	GymID      int64     `gorm:"not null;index:idx_sample_gym_observed"`
	ObservedAt time.Time `gorm:"not null;index:idx_sample_gym_observed"` // UTC
	Count      int       `gorm:"not null"`
	Ratio      float64   `gorm:"not null"`
	Percentage float64   `gorm:"not null"` // may exceed 100 when over nominal capacity
}
