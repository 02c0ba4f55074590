package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/mw"
	"gym-occupancy-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions)

	// Initialize middleware
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/gyms
		api.GET("/gyms", caching, GetGyms(s))

		// GET /api/gyms/{gym_id}/trend
		api.GET("/gyms/:gym_id/trend", caching, GetTrend(s))

		// GET /api/gyms/{gym_id}/nearby
		api.GET("/gyms/:gym_id/nearby", caching, GetNearby(s, &cfg.Nearby))

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
