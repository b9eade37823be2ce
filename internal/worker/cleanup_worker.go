package worker

import (
	"PdfVault/config"
	"PdfVault/internal/mq"
	"PdfVault/internal/storage"
	"PdfVault/internal/task"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

type dlqMessage struct {
	Bucket   string    `json:"bucket"`
	Object   string    `json:"object"`
	Attempt  int       `json:"attempt"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// RunCleanupWorker consumes blob-cleanup tasks from RabbitMQ and removes
// the objects from the store, with bounded retries and a DLQ.
func RunCleanupWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueTasks,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	concurrency := config.AppConfig.CleanupWorkerConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	burst := config.AppConfig.CleanupBurst
	if burst <= 0 {
		burst = 1
	}
	rateLimit := config.AppConfig.CleanupRate
	var limiter *rate.Limiter
	if rateLimit <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("cleanup worker: delivery channel closed")
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleCleanupMessage(ctx, client, limiter, d)
			}(delivery)
		}
	}
}

func handleCleanupMessage(ctx context.Context, client *mq.Client, limiter *rate.Limiter, delivery amqp.Delivery) {
	var msg task.CleanupMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("cleanup worker: invalid message: %v", err)
		_ = delivery.Ack(false)
		return
	}
	if msg.Object == "" {
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	if err := storage.Default.RemoveObject(ctx, msg.Bucket, msg.Object); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		if err := scheduleRetry(ctx, client, msg, err); err != nil {
			log.Printf("cleanup worker: retry schedule failed: %v", err)
			_ = delivery.Nack(false, true)
			return
		}
	} else {
		log.Printf("cleanup worker: removed %s/%s", msg.Bucket, msg.Object)
	}

	_ = delivery.Ack(false)
}

func scheduleRetry(ctx context.Context, client *mq.Client, msg task.CleanupMessage, procErr error) error {
	maxRetry := config.AppConfig.CleanupRetryMax
	if maxRetry < 0 {
		maxRetry = 0
	}
	nextAttempt := msg.Attempt + 1
	if maxRetry == 0 || nextAttempt > maxRetry {
		return publishDLQ(ctx, client, msg, procErr)
	}

	delay := pickRetryDelay(nextAttempt, config.AppConfig.CleanupRetryDelays)
	msg.Attempt = nextAttempt
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	log.Printf("cleanup worker: retry %d for %s/%s in %s: %v",
		nextAttempt, msg.Bucket, msg.Object, delay, procErr)
	return client.PublishRetry(ctx, body, delay)
}

func publishDLQ(ctx context.Context, client *mq.Client, msg task.CleanupMessage, procErr error) error {
	dlq := dlqMessage{
		Bucket:   msg.Bucket,
		Object:   msg.Object,
		Attempt:  msg.Attempt,
		Error:    procErr.Error(),
		FailedAt: time.Now(),
	}
	body, err := json.Marshal(dlq)
	if err != nil {
		return err
	}
	log.Printf("cleanup worker: giving up on %s/%s: %v", msg.Bucket, msg.Object, procErr)
	return client.PublishDLQ(ctx, body)
}

func pickRetryDelay(attempt int, delays []time.Duration) time.Duration {
	if len(delays) == 0 {
		return 30 * time.Second
	}
	if attempt <= 0 {
		return delays[0]
	}
	if attempt > len(delays) {
		return delays[len(delays)-1]
	}
	return delays[attempt-1]
}
