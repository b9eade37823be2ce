package task

import (
	"PdfVault/internal/mq"
	"context"
	"encoding/json"
)

// CleanupMessage is a blob-removal request sent to the worker.
type CleanupMessage struct {
	Bucket  string `json:"bucket"`
	Object  string `json:"object"`
	Attempt int    `json:"attempt"`
}

// EnqueueBlobCleanup hands an object to the cleanup worker. Callers treat
// a failure here as non-fatal and log it.
func EnqueueBlobCleanup(ctx context.Context, bucket, object string) error {
	msg := CleanupMessage{Bucket: bucket, Object: object, Attempt: 0}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		return err
	}
	return publisher.PublishTask(ctx, body)
}
