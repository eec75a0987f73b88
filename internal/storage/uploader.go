// Package storage streams uploaded images to a Google Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Uploader writes objects into one bucket and hands back public URLs.
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader creates the GCS client. If credsPath is empty, application
// default credentials are used.
func NewUploader(ctx context.Context, bucket, credsPath string) (*Uploader, error) {
	var client *storage.Client
	var err error
	if credsPath == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, fmt.Errorf("storage: creating GCS client: %w", err)
	}

	return &Uploader{client: client, bucket: bucket}, nil
}

// Upload streams r into the bucket at objectPath and returns the public URL.
func (u *Uploader) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	wc := u.client.Bucket(u.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return u.PublicURL(objectPath), nil
}

// PublicURL builds the public URL for an object in the bucket.
func (u *Uploader) PublicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectPath)
}

// Close releases the underlying client.
func (u *Uploader) Close() error {
	return u.client.Close()
}
