package storage

import "context"

// ImageRef is the stable reference returned by the image store:
// a public URL plus an opaque identifier used for later deletion.
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Uploader abstracts the external image-hosting service.
// A single attempt per call; failures propagate to the caller.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (ImageRef, error)
	Delete(ctx context.Context, publicID string) error
}
