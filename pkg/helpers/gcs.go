package helpers

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient opens a Cloud Storage client from a service-account file, or
// from Application Default Credentials when credsPath is empty.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return c, nil
}

// GCSUploader stores objects in one bucket that is publicly readable.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{Client: client, Bucket: bucket}
}

// Upload streams r to objectPath in one request and returns the public URL.
// Avatar paths are never reused, so the object may be cached for a day.
func (u *GCSUploader) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	w := u.Client.Bucket(u.Bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	w.ChunkSize = 0

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs finalize %s: %w", objectPath, err)
	}
	return PublicURL(u.Bucket, objectPath), nil
}

// PublicURL is the storage.googleapis.com address of an object.
func PublicURL(bucket, objectPath string) string {
	return (&url.URL{Scheme: "https", Host: "storage.googleapis.com", Path: "/" + bucket + "/" + objectPath}).String()
}
