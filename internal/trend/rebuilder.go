package trend

import (
	"context"
	"log"
	"time"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/store"
	"gym-occupancy-backend/internal/timeslot"
)

// Rebuilder periodically recomputes the derived trend table from the full
// retained sample history. Trends are a slow-moving statistical summary, so
// the table is eventually consistent by design: staleness between rebuilds is
// acceptable and expected.
type Rebuilder struct {
	cfg   *config.Config
	store store.Store
}

// NewRebuilder creates a new trend rebuild service.
func NewRebuilder(cfg *config.Config, s store.Store) *Rebuilder {
	return &Rebuilder{cfg: cfg, store: s}
}

// Run starts the rebuild process in a loop.
func (r *Rebuilder) Run(ctx context.Context) {
	if !r.cfg.Trend.Enabled {
		log.Println("Trend rebuilder is disabled. Not starting.")
		return
	}
	log.Println("Starting trend rebuilder...")

	r.RebuildOnce(ctx)

	timer := time.NewTimer(r.cfg.Trend.RebuildInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Trend rebuilder shutting down.")
			return
		case <-timer.C:
			r.RebuildOnce(ctx)
			timer.Reset(r.cfg.Trend.RebuildInterval)
		}
	}
}

// RebuildOnce recomputes the trend slots for every active gym. Failures for
// individual gyms are logged and skipped so one bad row never aborts the
// whole batch.
func (r *Rebuilder) RebuildOnce(ctx context.Context) {
	log.Println("Executing trend rebuild cycle...")
	since := time.Now().UTC().AddDate(0, 0, -r.cfg.Trend.HistoryDays)

	gyms, err := r.store.ActiveGyms(ctx)
	if err != nil {
		log.Printf("Error fetching gyms for trend rebuild: %v", err)
		return
	}

	rebuilt := 0
	for _, gym := range gyms {
		loc, err := timeslot.Zone(gym.Timezone, r.cfg.Trend.DefaultTimezone)
		if err != nil {
			log.Printf("Error resolving timezone for gym %d (%s): %v", gym.ID, gym.Name, err)
			continue
		}

		samples, err := r.store.SamplesSince(ctx, gym.ID, since)
		if err != nil {
			log.Printf("Error fetching samples for gym %d (%s): %v", gym.ID, gym.Name, err)
			continue
		}

		// Zero samples is a normal state for a newly onboarded gym; it
		// clears any stale slots and moves on.
		slots := Aggregate(samples, loc, Percentage)

		if err := r.store.ReplaceTrendSlots(ctx, gym.ID, slots); err != nil {
			log.Printf("Error replacing trend slots for gym %d (%s): %v", gym.ID, gym.Name, err)
			continue
		}
		rebuilt++
	}

	log.Printf("Trend rebuild cycle finished: %d/%d gyms rebuilt.", rebuilt, len(gyms))
}
