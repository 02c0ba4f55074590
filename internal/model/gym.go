package model

import "time"

// Gym represents one monitored fitness location. Rows are managed by an
// external administrative process; this service only reads them.
type Gym struct {
	ID         int64    `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Timezone   string   `gorm:"size:64" json:"timezone"`
	AreaSize   float64  `json:"areaSize"`
	SquatRacks int      `json:"squatRacks"`
	Postcode   string   `gorm:"size:16" json:"postcode"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	State      string   `gorm:"size:64" json:"state"`
	Active     bool     `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
