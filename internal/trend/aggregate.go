package trend

import (
	"math"
	"sort"
	"time"

	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/timeslot"
)

// Metric selects the value averaged into a trend slot.
type Metric func(model.OccupancySample) float64

// Percentage averages the derived occupancy percentage. This is the metric
// the trend table is built from.
func Percentage(s model.OccupancySample) float64 { return s.Percentage }

// Count averages the raw headcount instead.
func Count(s model.OccupancySample) float64 { return float64(s.Count) }

type slotKey struct {
	day    int
	bucket string
}

// Aggregate groups samples by (weekday, half-hour bucket) in loc and returns
// one TrendSlot per non-empty group, with the metric's arithmetic mean rounded
// to the nearest integer. Empty buckets produce no slot. An empty input yields
// an empty slice, which is the normal state for a newly onboarded gym.
//
// All call sites share this one function; the metric parameter is the only
// thing that varies between them.
func Aggregate(samples []model.OccupancySample, loc *time.Location, metric Metric) []model.TrendSlot {
	sums := make(map[slotKey]float64)
	counts := make(map[slotKey]int)

	for _, s := range samples {
		key := slotKey{
			day:    timeslot.DayOfWeek(s.ObservedAt, loc),
			bucket: timeslot.Bucket(s.ObservedAt, loc),
		}
		sums[key] += metric(s)
		counts[key]++
	}

	slots := make([]model.TrendSlot, 0, len(counts))
	for key, n := range counts {
		slots = append(slots, model.TrendSlot{
			DayOfWeek:   key.day,
			TimeOfDay:   key.bucket,
			Average:     int(math.Round(sums[key] / float64(n))),
			SampleCount: n,
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].TimeOfDay < slots[j].TimeOfDay
	})

	return slots
}
