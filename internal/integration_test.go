package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/api"
	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/store"
	"gym-occupancy-backend/internal/trend"
)

func float64Ptr(v float64) *float64 { return &v }

// TestTrendLifecycle seeds a week of samples for two gyms in different time
// zones, runs a rebuild cycle, and verifies the derived trend table and the
// read API end to end.
func TestTrendLifecycle(t *testing.T) {
	// --- Test Setup ---

	// 1. Setup an in-memory SQLite database for testing.
	testDB, err := gorm.Open(sqlite.Open("file:trendlifecycle?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	// Run database migrations.
	err = testDB.AutoMigrate(&model.Gym{}, &model.OccupancySample{}, &model.TrendSlot{}, &model.PushSubscription{})
	require.NoError(t, err)

	// 2. Create a mock configuration.
	mockConfig := &config.Config{
		Trend: config.TrendConfig{
			Enabled:         true,
			HistoryDays:     36500,
			DefaultTimezone: "Australia/Perth",
		},
		Nearby: config.NearbyConfig{RadiusKm: 10, MaxResults: 5},
	}
	mockConfig.Server.RateLimitPerSec = 100
	mockConfig.Server.RateLimitBurst = 100
	mockConfig.Server.CacheTTLSeconds = 1

	// 3. Seed gyms: one in Perth, one in Adelaide, one with a broken zone
	// that must fall back to the configured default.
	perth, err := time.LoadLocation("Australia/Perth")
	require.NoError(t, err)
	adelaide, err := time.LoadLocation("Australia/Adelaide")
	require.NoError(t, err)

	gyms := []model.Gym{
		{ID: 1, Name: "Perth CBD", Timezone: "Australia/Perth", Latitude: float64Ptr(-31.95), Longitude: float64Ptr(115.86), State: "WA", Active: true},
		{ID: 2, Name: "Adelaide Central", Timezone: "Australia/Adelaide", Latitude: float64Ptr(-34.9285), Longitude: float64Ptr(138.6007), State: "SA", Active: true},
		{ID: 3, Name: "Broken Zone", Timezone: "Not/AZone", Latitude: float64Ptr(-31.90), Longitude: float64Ptr(115.86), State: "WA", Active: true},
	}
	require.NoError(t, testDB.Create(&gyms).Error)

	// Samples for gym 1: two Mondays, 08:00-08:29 Perth local at 40%,
	// 08:30-08:59 at 60%.
	var samples []model.OccupancySample
	for _, day := range []int{2, 9} { // 2025-06-02 and 2025-06-09 are Mondays
		for _, min := range []int{0, 15} {
			samples = append(samples, model.OccupancySample{
				GymID:      1,
				ObservedAt: time.Date(2025, 6, day, 8, min, 0, 0, perth).UTC(),
				Count:      40, Ratio: 0.04, Percentage: 40,
			})
			samples = append(samples, model.OccupancySample{
				GymID:      1,
				ObservedAt: time.Date(2025, 6, day, 8, 30+min, 0, 0, perth).UTC(),
				Count:      60, Ratio: 0.06, Percentage: 60,
			})
		}
	}
	// Samples for gym 2: same UTC instants land in different Adelaide buckets.
	samples = append(samples, model.OccupancySample{
		GymID:      2,
		ObservedAt: time.Date(2025, 6, 3, 17, 45, 0, 0, adelaide).UTC(),
		Count:      80, Ratio: 0.08, Percentage: 72,
	})
	// Sample for gym 3: observed 09:10 in Perth (the fallback zone).
	samples = append(samples, model.OccupancySample{
		GymID:      3,
		ObservedAt: time.Date(2025, 6, 4, 9, 10, 0, 0, perth).UTC(),
		Count:      25, Ratio: 0.02, Percentage: 20,
	})
	require.NoError(t, testDB.Create(&samples).Error)

	// 4. Instantiate the store and rebuilder.
	appStore := store.NewGormStore(testDB)
	rebuilder := trend.NewRebuilder(mockConfig, appStore)

	// --- Cycle 1: Initial rebuild ---
	t.Run("Cycle 1: Rebuild Produces Bucketed Trends", func(t *testing.T) {
		rebuilder.RebuildOnce(context.Background())

		slots, err := appStore.TrendFor(context.Background(), 1, 1) // gym 1, Monday
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, "08:00", slots[0].TimeOfDay)
		assert.Equal(t, 40, slots[0].Average)
		assert.Equal(t, 4, slots[0].SampleCount)
		assert.Equal(t, "08:30", slots[1].TimeOfDay)
		assert.Equal(t, 60, slots[1].Average)
		assert.Equal(t, 4, slots[1].SampleCount)

		// No other weekday has slots for gym 1.
		week, err := appStore.TrendFor(context.Background(), 1, -1)
		require.NoError(t, err)
		assert.Len(t, week, 2)

		// Gym 2 bucketed in Adelaide local time: Tuesday 17:30.
		slots, err = appStore.TrendFor(context.Background(), 2, 2)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "17:30", slots[0].TimeOfDay)
		assert.Equal(t, 72, slots[0].Average)

		// Gym 3 fell back to the Perth default zone: Wednesday 09:00.
		slots, err = appStore.TrendFor(context.Background(), 3, 3)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "09:00", slots[0].TimeOfDay)
	})

	// --- Cycle 2: Rebuild is idempotent and replaces, never accumulates ---
	t.Run("Cycle 2: Rebuild Replaces Previous Slots", func(t *testing.T) {
		rebuilder.RebuildOnce(context.Background())

		var count int64
		testDB.Model(&model.TrendSlot{}).Where("gym_id = ?", 1).Count(&count)
		assert.Equal(t, int64(2), count, "re-running the rebuild must not duplicate slots")
	})

	// --- Read API over the rebuilt data ---
	t.Run("API Serves Trends And Nearby", func(t *testing.T) {
		router := api.NewRouter(appStore, mockConfig, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/gyms/1/trend?day=1", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var slots []model.TrendSlot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
		require.Len(t, slots, 2)
		assert.Equal(t, 40, slots[0].Average)

		// Nearby: gym 3 is ~5.6 km from gym 1; Adelaide is far outside
		// the radius.
		w = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/api/gyms/1/nearby", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var nearbyGyms []struct {
			GymName    string  `json:"gymName"`
			Percentage float64 `json:"percentage"`
			DistanceKm float64 `json:"distanceKm"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nearbyGyms))
		require.Len(t, nearbyGyms, 1, "Adelaide is outside the 10 km radius")
		assert.Equal(t, "Broken Zone", nearbyGyms[0].GymName)
		assert.Equal(t, 20.0, nearbyGyms[0].Percentage)
		assert.InDelta(t, 5.6, nearbyGyms[0].DistanceKm, 0.1)
	})
}

// TestTrendEmptyGym verifies that a gym with no samples rebuilds to an empty
// trend without error.
func TestTrendEmptyGym(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:trendempty?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	err = testDB.AutoMigrate(&model.Gym{}, &model.OccupancySample{}, &model.TrendSlot{})
	require.NoError(t, err)

	gym := model.Gym{ID: 1, Name: "Fresh Gym", Timezone: "Australia/Perth", Active: true}
	require.NoError(t, testDB.Create(&gym).Error)

	mockConfig := &config.Config{
		Trend: config.TrendConfig{Enabled: true, HistoryDays: 36500, DefaultTimezone: "Australia/Perth"},
	}

	appStore := store.NewGormStore(testDB)
	rebuilder := trend.NewRebuilder(mockConfig, appStore)
	rebuilder.RebuildOnce(context.Background())

	for day := 0; day <= 6; day++ {
		slots, err := appStore.TrendFor(context.Background(), 1, day)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}
