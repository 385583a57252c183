package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/infrastructure/storage"
)

// ImageCleanupHandler deletes orphaned image assets from the store.
// Orphans appear when an upload batch partially fails, when a record
// delete cascades, or when an update drops images.
type ImageCleanupHandler struct {
	uploader storage.Uploader
}

func NewImageCleanupHandler(uploader storage.Uploader) *ImageCleanupHandler {
	return &ImageCleanupHandler{uploader: uploader}
}

func (h *ImageCleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// a malformed payload will never succeed, skip retries
		return fmt.Errorf("failed to unmarshal image cleanup payload: %v: %w", err, asynq.SkipRetry)
	}

	var failed []string
	for _, publicID := range payload.PublicIDs {
		if err := h.uploader.Delete(ctx, publicID); err != nil {
			log.Error().Err(err).
				Str("public_id", publicID).
				Msg("Failed to delete image asset")
			failed = append(failed, publicID)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to delete %d of %d image assets", len(failed), len(payload.PublicIDs))
	}

	log.Info().
		Int("deleted", len(payload.PublicIDs)).
		Msg("Image cleanup completed")
	return nil
}
