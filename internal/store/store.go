package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gym-occupancy-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	ActiveGyms(ctx context.Context) ([]model.Gym, error)
	GymByID(ctx context.Context, id int64) (model.Gym, error)
	SamplesSince(ctx context.Context, gymID int64, since time.Time) ([]model.OccupancySample, error)
	CurrentSnapshot(ctx context.Context) ([]SnapshotRow, error)
	ReplaceTrendSlots(ctx context.Context, gymID int64, slots []model.TrendSlot) error
	TrendFor(ctx context.Context, gymID int64, dayOfWeek int) ([]model.TrendSlot, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for read handlers and associations.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ActiveGyms returns all gyms currently included in views, ordered by name.
func (s *gormStore) ActiveGyms(ctx context.Context) ([]model.Gym, error) {
	var gyms []model.Gym
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&gyms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active gyms: %w", err)
	}
	return gyms, nil
}

// GymByID returns a single gym by primary key.
func (s *gormStore) GymByID(ctx context.Context, id int64) (model.Gym, error) {
	var gym model.Gym
	if err := s.db.WithContext(ctx).First(&gym, id).Error; err != nil {
		return model.Gym{}, err
	}
	return gym, nil
}

// SamplesSince returns all samples for one gym observed at or after since,
// in chronological order.
func (s *gormStore) SamplesSince(ctx context.Context, gymID int64, since time.Time) ([]model.OccupancySample, error) {
	var samples []model.OccupancySample
	err := s.db.WithContext(ctx).
		Where("gym_id = ? AND observed_at >= ?", gymID, since).
		Order("observed_at").
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples for gym %d: %w", gymID, err)
	}
	return samples, nil
}

// CurrentSnapshot returns the most recent sample per gym.
func (s *gormStore) CurrentSnapshot(ctx context.Context) ([]SnapshotRow, error) {
	sub := s.db.Model(&model.OccupancySample{}).
		Select("gym_id, MAX(observed_at) AS observed_at").
		Group("gym_id")

	var rows []SnapshotRow
	err := s.db.WithContext(ctx).
		Model(&model.OccupancySample{}).
		Select("occupancy_samples.gym_id, occupancy_samples.observed_at, occupancy_samples.count, occupancy_samples.ratio, occupancy_samples.percentage").
		Joins("JOIN (?) latest ON latest.gym_id = occupancy_samples.gym_id AND latest.observed_at = occupancy_samples.observed_at", sub).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current snapshot: %w", err)
	}
	return rows, nil
}

// ReplaceTrendSlots swaps out a gym's derived trend rows in one transaction,
// so readers never see a half-rebuilt week.
func (s *gormStore) ReplaceTrendSlots(ctx context.Context, gymID int64, slots []model.TrendSlot) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gym_id = ?", gymID).Delete(&model.TrendSlot{}).Error; err != nil {
			return fmt.Errorf("failed to clear trend slots for gym %d: %w", gymID, err)
		}
		if len(slots) == 0 {
			return nil
		}
		for i := range slots {
			slots[i].GymID = gymID
			slots[i].RebuiltAt = now
		}
		if err := tx.Create(&slots).Error; err != nil {
			return fmt.Errorf("failed to insert trend slots for gym %d: %w", gymID, err)
		}
		return nil
	})
}

// TrendFor returns a gym's trend slots, optionally restricted to one weekday
// (pass a negative dayOfWeek for the whole week). Missing history yields an
// empty slice, not an error.
func (s *gormStore) TrendFor(ctx context.Context, gymID int64, dayOfWeek int) ([]model.TrendSlot, error) {
	q := s.db.WithContext(ctx).Where("gym_id = ?", gymID)
	if dayOfWeek >= 0 {
		q = q.Where("day_of_week = ?", dayOfWeek)
	}

	var slots []model.TrendSlot
	if err := q.Order("day_of_week, time_of_day").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch trend for gym %d: %w", gymID, err)
	}
	return slots, nil
}
