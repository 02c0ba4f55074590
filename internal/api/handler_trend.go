package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/store"
)

// GetTrend handles the GET /api/gyms/{gym_id}/trend request. The "day" query
// (0=Sunday .. 6=Saturday) restricts the result to one weekday; without it the
// whole week is returned. A gym with no history yields an empty array.
func GetTrend(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, err := strconv.ParseInt(c.Param("gym_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid gym ID"})
			return
		}

		day := -1
		if dayParam := c.Query("day"); dayParam != "" {
			day, err = strconv.Atoi(dayParam)
			if err != nil || day < 0 || day > 6 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'day'. Use 0 (Sunday) through 6 (Saturday)."})
				return
			}
		}

		if _, err := s.GymByID(c.Request.Context(), gymID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Gym not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gym"})
			}
			return
		}

		slots, err := s.TrendFor(c.Request.Context(), gymID, day)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trend"})
			return
		}
		if slots == nil {
			slots = []model.TrendSlot{}
		}

		c.JSON(http.StatusOK, slots)
	}
}
