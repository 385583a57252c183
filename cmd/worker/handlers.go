package main

import (
	"github.com/hibiken/asynq"

	"catalog-backend/internal/infrastructure/queue"
	"catalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	imageCleanup *queue.ImageCleanupHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		imageCleanup: queue.NewImageCleanupHandler(c.Uploader),
	}
}

func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(queue.TypeImageCleanup, r.imageCleanup)
}
