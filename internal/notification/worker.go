package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"gym-occupancy-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending quiet-gym alerts.
type WorkerPool struct {
	size    int
	jobs    chan QuietGym
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// QuietGym is one alert job: a gym whose occupancy dropped below the
// configured threshold.
type QuietGym struct {
	GymID      int64
	Percentage float64
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan QuietGym, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			log.Printf("Worker %d processing gym %d", id, job.GymID)
			wp.sendNotificationsForGym(ctx, job)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(job QuietGym) {
	wp.jobs <- job
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan QuietGym {
	return wp.jobs
}

// sendNotificationsForGym fetches subscriptions and sends alerts for a gym.
func (wp *WorkerPool) sendNotificationsForGym(ctx context.Context, job QuietGym) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_gym_mapping sgm ON sgm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sgm.gym_id = ?", job.GymID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for gym %d: %v", job.GymID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for gym %d", len(subscriptions), job.GymID)

	var gym model.Gym
	gymLabel := fmt.Sprintf("Gym %d", job.GymID)
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&gym, job.GymID).Error; err != nil {
		log.Printf("Error fetching gym %d: %v", job.GymID, err)
	} else if gym.Name != "" {
		gymLabel = gym.Name
	}

	message := fmt.Sprintf("%s is quiet right now (%.0f%% full)", gymLabel, job.Percentage)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	// Manually construct the webpush.Subscription object
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == 410 {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
