package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/store"
)

// GymStatusResponse is one gym with its most recent observation.
type GymStatusResponse struct {
	model.Gym
	Count      int       `json:"count"`
	Ratio      float64   `json:"ratio"`
	Percentage float64   `json:"percentage"`
	ObservedAt time.Time `json:"observedAt"`
}

// GetGyms handles the GET /api/gyms request: all active gyms with their
// current occupancy, least crowded first. An optional comma-separated "names"
// query restricts the list, mirroring a user's saved gym preferences.
func GetGyms(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		gyms, err := s.ActiveGyms(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gyms"})
			return
		}

		rows, err := s.CurrentSnapshot(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve occupancy snapshot"})
			return
		}

		snapshotMap := make(map[int64]store.SnapshotRow, len(rows))
		for _, row := range rows {
			snapshotMap[row.GymID] = row
		}

		var nameFilter map[string]bool
		if names := c.Query("names"); names != "" {
			nameFilter = make(map[string]bool)
			for _, n := range strings.Split(names, ",") {
				nameFilter[strings.TrimSpace(n)] = true
			}
		}

		responses := make([]GymStatusResponse, 0, len(gyms))
		for _, gym := range gyms {
			if nameFilter != nil && !nameFilter[gym.Name] {
				continue
			}
			row, ok := snapshotMap[gym.ID]
			if !ok {
				// No samples yet: a newly onboarded gym, not an error.
				continue
			}
			responses = append(responses, GymStatusResponse{
				Gym:        gym,
				Count:      row.Count,
				Ratio:      row.Ratio,
				Percentage: row.Percentage,
				ObservedAt: row.ObservedAt,
			})
		}

		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].Percentage < responses[j].Percentage
		})

		c.JSON(http.StatusOK, responses)
	}
}
