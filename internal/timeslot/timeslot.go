package timeslot

import (
	"fmt"
	"log"
	"time"
)

// Bucket maps an instant to one of the 48 half-hour wall-clock markers
// ("00:00" .. "23:30") of the day it falls on in loc. Minutes truncate
// downward, so 08:47 local lands in "08:30".
func Bucket(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute()/30*30)
}

// DayOfWeek returns the weekday of the instant in loc, 0=Sunday .. 6=Saturday.
func DayOfWeek(t time.Time, loc *time.Location) int {
	return int(t.In(loc).Weekday())
}

// Zone loads an IANA zone by name, falling back to the named default when the
// primary name is empty or unknown. The fallback must itself be a valid zone;
// an invalid fallback is a configuration error.
func Zone(name, fallback string) (*time.Location, error) {
	if name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			return loc, nil
		}
		log.Printf("Warning: unknown timezone %q, falling back to %q", name, fallback)
	}
	loc, err := time.LoadLocation(fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback timezone %q: %w", fallback, err)
	}
	return loc, nil
}
