package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Enqueuer is the producer-side contract services depend on.
type Enqueuer interface {
	EnqueueImageCleanup(ctx context.Context, publicIDs []string) error
}

// Client wraps the asynq producer.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueImageCleanup schedules deletion of external-store assets.
// Used as compensation when an operation discards already-uploaded images.
func (c *Client) EnqueueImageCleanup(ctx context.Context, publicIDs []string) error {
	if len(publicIDs) == 0 {
		return nil
	}

	task, err := NewImageCleanupTask(publicIDs)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeImageCleanup, err)
	}

	log.Info().
		Str("task_id", info.ID).
		Int("count", len(publicIDs)).
		Msg("Image cleanup enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
