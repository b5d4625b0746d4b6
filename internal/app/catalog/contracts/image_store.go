package contracts

import (
	"context"
	"io"
)

// ImageUpload is an incoming image file for a product.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// ImageStore abstracts the object storage holding product images.
type ImageStore interface {
	// Upload writes an object and returns its public URL.
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)

	// Delete removes the object behind a previously returned URL.
	// Deleting a missing object is not an error.
	Delete(ctx context.Context, url string) error
}
