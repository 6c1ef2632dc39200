package gcp

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
)

// CreateStorage returns a Cloud Storage client, or nil when no bucket is configured.
func CreateStorage(ctx context.Context, bucket string) *storage.Client {
	if bucket == "" {
		return nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}
	return client
}
