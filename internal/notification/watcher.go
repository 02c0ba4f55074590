package notification

import (
	"context"
	"log"
	"time"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/store"
)

// Watcher polls the current occupancy snapshot and dispatches an alert job
// the moment a gym crosses below the quiet threshold. Crossing detection is
// against the previous poll, so subscribers get one alert per quiet spell
// rather than one per poll.
type Watcher struct {
	cfg      *config.Config
	store    store.Store
	pool     *WorkerPool
	lastSeen map[int64]float64
}

// NewWatcher creates a new quiet-gym watcher.
func NewWatcher(cfg *config.Config, s store.Store, pool *WorkerPool) *Watcher {
	return &Watcher{
		cfg:      cfg,
		store:    s,
		pool:     pool,
		lastSeen: make(map[int64]float64),
	}
}

// Run starts the watch loop.
func (w *Watcher) Run(ctx context.Context) {
	if !w.cfg.Alerts.Enabled {
		log.Println("Quiet-gym alerts are disabled. Not starting watcher.")
		return
	}
	log.Println("Starting quiet-gym watcher...")

	w.pool.Start(ctx)
	w.CheckOnce(ctx)

	timer := time.NewTimer(w.cfg.Alerts.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Quiet-gym watcher shutting down.")
			return
		case <-timer.C:
			w.CheckOnce(ctx)
			timer.Reset(w.cfg.Alerts.Interval)
		}
	}
}

// CheckOnce performs a single poll of the current snapshot.
func (w *Watcher) CheckOnce(ctx context.Context) {
	rows, err := w.store.CurrentSnapshot(ctx)
	if err != nil {
		log.Printf("Error fetching snapshot for alert check: %v", err)
		return
	}

	threshold := w.cfg.Alerts.QuietThreshold
	for _, row := range rows {
		prev, seen := w.lastSeen[row.GymID]
		w.lastSeen[row.GymID] = row.Percentage

		// Only fire on a downward crossing. A gym first observed below the
		// threshold fires too, so fresh restarts still alert.
		if row.Percentage >= threshold {
			continue
		}
		if seen && prev < threshold {
			continue
		}

		w.pool.Dispatch(QuietGym{GymID: row.GymID, Percentage: row.Percentage})
	}
}
