package export

import (
	"context"
	"fmt"
	"path"
	"time"

	"cloud.google.com/go/storage"
)

// GCSSink uploads files to a Cloud Storage bucket under an optional prefix.
// Credentials come from the client, typically Application Default Credentials.
type GCSSink struct {
	bucket  *storage.BucketHandle
	prefix  string
	timeout time.Duration
}

// NewGCSSink creates a sink for bucket. Objects are named prefix/filename.
func NewGCSSink(client *storage.Client, bucket, prefix string) *GCSSink {
	return &GCSSink{
		bucket:  client.Bucket(bucket),
		prefix:  prefix,
		timeout: 2 * time.Minute,
	}
}

// ObjectName returns the object name filename is uploaded to.
func (s *GCSSink) ObjectName(filename string) string {
	return objectName(s.prefix, filename)
}

func (s *GCSSink) Write(ctx context.Context, filename string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	w := s.bucket.Object(s.ObjectName(filename)).NewWriter(ctx)
	w.ContentType = contentTypeFor(filename)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload %s: %w", filename, err)
	}
	return nil
}

func objectName(prefix, filename string) string {
	if prefix == "" {
		return path.Base(filename)
	}
	return path.Join(prefix, path.Base(filename))
}

func contentTypeFor(filename string) string {
	f, err := ParseFormat(path.Ext(filename))
	if err != nil {
		return "application/octet-stream"
	}
	return f.ContentType()
}
