package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fixpoint/config"
	"fixpoint/models"
	"fixpoint/services/booking"
	"fixpoint/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingCompleted = "booking:completed"

// AsynqDispatcher implements booking.Dispatcher by enqueueing completed
// bookings onto the Redis-backed task queue for asynchronous fan-out.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher builds a dispatcher over the configured queue Redis DB.
func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (d *AsynqDispatcher) BookingCompleted(ctx context.Context, b models.Booking) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal booking payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingCompleted, payload)
	if _, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue completed booking: %w", err)
	}
	return nil
}

// InitDispatchWorker runs the async worker in background, fanning completed
// bookings out to the notification service and the operational repair queue.
func InitDispatchWorker(notifSvc notification.Service, repairQueue booking.RepairQueue) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingCompleted, handleBookingCompleted(notifSvc, repairQueue))

	// Start async worker with retry logic
	go func() {
		log.Println("[DispatchWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DispatchWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DispatchWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleBookingCompleted(notifSvc notification.Service, repairQueue booking.RepairQueue) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var b models.Booking
		if err := json.Unmarshal(task.Payload(), &b); err != nil {
			log.Printf("[DispatchHandler] Invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendBookingConfirmation(ctx, b); err != nil {
			log.Printf("[DispatchHandler] Failed to send confirmation for %s: %v", b.ID, err)
			return err
		}
		if err := repairQueue.Enqueue(ctx, b); err != nil {
			log.Printf("[DispatchHandler] Failed to enqueue repair for %s: %v", b.ID, err)
			return err
		}
		return nil
	}
}

// LoggingRepairQueue is the default repair-queue collaborator: it only logs
// the hand-off. Workshop systems replace it.
type LoggingRepairQueue struct {
	Logger *zap.Logger
}

func (q *LoggingRepairQueue) Enqueue(ctx context.Context, b models.Booking) error {
	q.Logger.Info("booking queued for technician assignment",
		zap.String("bookingId", b.ID),
		zap.String("deviceId", b.DeviceID),
		zap.Strings("serviceIds", b.ServiceIDs),
	)
	return nil
}
