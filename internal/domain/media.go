package domain

import (
	"context"
	"io"
)

// ImageStore persists an uploaded image and returns the URL it will be served from.
// Remove deletes a previously saved image by its URL.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (url string, err error)
	Remove(ctx context.Context, url string) error
}
