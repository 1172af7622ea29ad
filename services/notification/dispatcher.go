package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeBookingConfirmation is the asynq task type for confirmation delivery.
const TypeBookingConfirmation = "notification:booking_confirmation"

// AsynqDispatcher enqueues notification tasks onto the Redis-backed queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) EnqueueBookingConfirmation(ctx context.Context, payload BookingConfirmation) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal booking confirmation: %w", err)
	}
	task := asynq.NewTask(TypeBookingConfirmation, data)
	if _, err := d.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	); err != nil {
		return fmt.Errorf("failed to enqueue booking confirmation: %w", err)
	}
	return nil
}
