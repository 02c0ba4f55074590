package notification

import (
	"context"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/store"
)

// stubStore serves canned snapshot rows to the watcher.
type stubStore struct {
	rows []store.SnapshotRow
}

func (s *stubStore) DB() *gorm.DB { return nil }
func (s *stubStore) ActiveGyms(ctx context.Context) ([]model.Gym, error) {
	return nil, nil
}
func (s *stubStore) GymByID(ctx context.Context, id int64) (model.Gym, error) {
	return model.Gym{}, nil
}
func (s *stubStore) SamplesSince(ctx context.Context, gymID int64, since time.Time) ([]model.OccupancySample, error) {
	return nil, nil
}
func (s *stubStore) CurrentSnapshot(ctx context.Context) ([]store.SnapshotRow, error) {
	return s.rows, nil
}
func (s *stubStore) ReplaceTrendSlots(ctx context.Context, gymID int64, slots []model.TrendSlot) error {
	return nil
}
func (s *stubStore) TrendFor(ctx context.Context, gymID int64, dayOfWeek int) ([]model.TrendSlot, error) {
	return nil, nil
}

func drainJobs(wp *WorkerPool) []QuietGym {
	var jobs []QuietGym
	for {
		select {
		case job := <-wp.Jobs():
			jobs = append(jobs, job)
		default:
			return jobs
		}
	}
}

func TestWatcherFiresOnDownwardCrossing(t *testing.T) {
	st := &stubStore{}
	pool := NewWorkerPool(8, nil, &webpush.Options{})
	cfg := &config.Config{}
	cfg.Alerts.QuietThreshold = 30

	w := NewWatcher(cfg, st, pool)
	ctx := context.Background()

	// First poll: gym 1 busy, gym 2 already quiet. Gym 2 fires (first
	// observation below threshold).
	st.rows = []store.SnapshotRow{
		{GymID: 1, Percentage: 70},
		{GymID: 2, Percentage: 20},
	}
	w.CheckOnce(ctx)
	jobs := drainJobs(pool)
	assert.Equal(t, []QuietGym{{GymID: 2, Percentage: 20}}, jobs)

	// Second poll: gym 1 drops below threshold and fires; gym 2 stays quiet
	// and must not fire again.
	st.rows = []store.SnapshotRow{
		{GymID: 1, Percentage: 25},
		{GymID: 2, Percentage: 18},
	}
	w.CheckOnce(ctx)
	jobs = drainJobs(pool)
	assert.Equal(t, []QuietGym{{GymID: 1, Percentage: 25}}, jobs)

	// Third poll: gym 1 recovers, then drops again on the fourth poll and
	// fires a second time.
	st.rows = []store.SnapshotRow{{GymID: 1, Percentage: 55}}
	w.CheckOnce(ctx)
	assert.Empty(t, drainJobs(pool))

	st.rows = []store.SnapshotRow{{GymID: 1, Percentage: 12}}
	w.CheckOnce(ctx)
	jobs = drainJobs(pool)
	assert.Equal(t, []QuietGym{{GymID: 1, Percentage: 12}}, jobs)
}
