package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeImageCleanup removes orphaned or discarded assets from the
	// external image store.
	TypeImageCleanup = "image:cleanup"
)

// ImageCleanupPayload carries the public ids to delete.
type ImageCleanupPayload struct {
	PublicIDs []string `json:"public_ids"`
}

// NewImageCleanupTask builds an asynq task for the given public ids.
func NewImageCleanupTask(publicIDs []string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageCleanupPayload{PublicIDs: publicIDs})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(TypeImageCleanup, payload, asynq.MaxRetry(5), asynq.Queue("low")), nil
}
