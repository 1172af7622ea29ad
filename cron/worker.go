package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"atstay/config"
	"atstay/services/notification"

	"github.com/hibiken/asynq"
)

// NewQueueClient builds the asynq client used to enqueue notification tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// InitNotificationWorker runs the async worker in background.
func InitNotificationWorker(notifSvc notification.NotificationService) {
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
	mux.HandleFunc(notification.TypeBookingConfirmation, handleBookingConfirmationTask(notifSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleBookingConfirmationTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.BookingConfirmation
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotificationWorker] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendBookingConfirmation(ctx, p); err != nil {
			log.Printf("[NotificationWorker] failed to send confirmation for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}
