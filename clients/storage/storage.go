package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const (
	backupPrefix   = "backups"
	requestTimeout = time.Minute
)

var (
	ErrNotFound    = errors.New("archived object not found")
	ErrInvalidName = errors.New("invalid archive object name")
)

type Object struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Archive keeps backup files per user.
type Archive interface {
	Upload(ctx context.Context, userID string, name string, contentType string, content []byte) (Object, error)
	Download(ctx context.Context, userID string, name string) ([]byte, error)
	List(ctx context.Context, userID string) ([]Object, error)
}

type bucketArchive struct {
	bucket *storage.BucketHandle
}

var _ Archive = (*bucketArchive)(nil)

func NewBucketArchive(client *storage.Client, bucket string) Archive {
	return &bucketArchive{
		bucket: client.Bucket(bucket),
	}
}

// ObjectName places name under the user's backup folder. Names must be plain file names.
func ObjectName(userID string, name string) (string, error) {
	if userID == "" || name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") || strings.Contains(name, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return path.Join(backupPrefix, userID, name), nil
}

func (a *bucketArchive) Upload(ctx context.Context, userID string, name string, contentType string, content []byte) (Object, error) {
	objectName, err := ObjectName(userID, name)
	if err != nil {
		return Object{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	w := a.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return Object{}, fmt.Errorf("Object(%q).Write: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return Object{}, fmt.Errorf("Object(%q).Close: %w", objectName, err)
	}
	slog.Debug("Blob uploaded successfully", "objectName", objectName, "bytes", len(content))
	attrs := w.Attrs()
	return Object{Name: name, Size: attrs.Size, CreatedAt: attrs.Created}, nil
}

func (a *bucketArchive) Download(ctx context.Context, userID string, name string) ([]byte, error) {
	objectName, err := ObjectName(userID, name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	rc, err := a.bucket.Object(objectName).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("Object(%q).NewReader: %w", objectName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}
	slog.Debug("Blob downloaded successfully", "objectName", objectName)
	return content, nil
}

func (a *bucketArchive) List(ctx context.Context, userID string) ([]Object, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user", ErrInvalidName)
	}
	prefix := path.Join(backupPrefix, userID) + "/"
	it := a.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	objects := make([]Object, 0)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", prefix, err)
		}
		objects = append(objects, Object{
			Name:      strings.TrimPrefix(attrs.Name, prefix),
			Size:      attrs.Size,
			CreatedAt: attrs.Created,
		})
	}
	return objects, nil
}
