package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

const publicURLPrefix = "https://storage.googleapis.com"

// GCSImageStore stores product images as public objects in a Cloud
// Storage bucket.
type GCSImageStore struct {
	client *storage.Client
	bucket string
}

// NewGCSImageStore creates a new GCSImageStore.
func NewGCSImageStore(client *storage.Client, bucket string) *GCSImageStore {
	return &GCSImageStore{
		client: client,
		bucket: bucket,
	}
}

// Upload writes the object and returns its public URL.
func (s *GCSImageStore) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s/%s", publicURLPrefix, s.bucket, objectName), nil
}

// Delete removes the object behind a previously returned URL. URLs
// from another bucket or host are rejected. Deleting an object that
// no longer exists is not an error.
func (s *GCSImageStore) Delete(ctx context.Context, url string) error {
	objectName, err := s.objectName(url)
	if err != nil {
		return err
	}

	err = s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

func (s *GCSImageStore) objectName(url string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", publicURLPrefix, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("url %q does not belong to bucket %s", url, s.bucket)
	}
	return strings.TrimPrefix(url, prefix), nil
}
