package model

import "time"

// TrendSlot is one half-hour bucket of a gym's weekly occupancy trend.
// The table is a derived cache, rebuilt wholesale per gym on a fixed cadence;
// buckets with no historical samples simply have no row.
type TrendSlot struct {
	GymID       int64     `gorm:"primaryKey" json:"-"`
	DayOfWeek   int       `gorm:"primaryKey" json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	TimeOfDay   string    `gorm:"primaryKey;size:5" json:"time"` // "HH:MM", half-hour marker
	Average     int       `gorm:"not null" json:"average"`
	SampleCount int       `gorm:"not null" json:"sampleCount"`
	RebuiltAt   time.Time `gorm:"not null" json:"-"`
}
