package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/nearby"
	"gym-occupancy-backend/internal/store"
)

// GetNearby handles the GET /api/gyms/{gym_id}/nearby request: less crowded
// active gyms within radius of the reference gym. "radius_km" and "limit"
// queries override the configured defaults. A reference gym without
// resolvable coordinates yields an empty array, not an error.
func GetNearby(s store.Store, cfg *config.NearbyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, err := strconv.ParseInt(c.Param("gym_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid gym ID"})
			return
		}

		radiusKm := cfg.RadiusKm
		if p := c.Query("radius_km"); p != "" {
			radiusKm, err = strconv.ParseFloat(p, 64)
			if err != nil || radiusKm <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'radius_km'"})
				return
			}
		}

		maxResults := cfg.MaxResults
		if p := c.Query("limit"); p != "" {
			maxResults, err = strconv.Atoi(p)
			if err != nil || maxResults <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit'"})
				return
			}
		}

		refGym, err := s.GymByID(c.Request.Context(), gymID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Gym not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gym"})
			}
			return
		}

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

		candidates := make([]nearby.Candidate, 0, len(gyms))
		for _, gym := range gyms {
			row, ok := snapshotMap[gym.ID]
			if !ok {
				// A gym with no current observation cannot be ranked by crowd.
				continue
			}
			candidates = append(candidates, nearby.Candidate{Gym: gym, Percentage: row.Percentage})
		}

		c.JSON(http.StatusOK, nearby.Rank(refGym, candidates, radiusKm, maxResults))
	}
}
