package repository

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// CloudStorageStore implements Store using Google Cloud Storage with JSON objects.
type CloudStorageStore struct {
	client     *storage.Client
	bucketName string
	prefix     string
}

// NewCloudStorageStore creates a new Cloud Storage backed store
func NewCloudStorageStore(ctx context.Context, bucketName string) (*CloudStorageStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &CloudStorageStore{
		client:     client,
		bucketName: bucketName,
		prefix:     "pulse/",
	}, nil
}

func (s *CloudStorageStore) objectName(key string) string {
	return s.prefix + key + ".json"
}

func (s *CloudStorageStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(key))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", key, err)
	}
	return data, nil
}

func (s *CloudStorageStore) Set(ctx context.Context, key string, value []byte) error {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(key))

	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(value); err != nil {
		writer.Close()
		return fmt.Errorf("writing object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer %s: %w", key, err)
	}
	return nil
}

func (s *CloudStorageStore) Delete(ctx context.Context, key string) error {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(key))
	if err := obj.Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

func (s *CloudStorageStore) Exists(ctx context.Context, key string) (bool, error) {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(key))
	if _, err := obj.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, fmt.Errorf("checking object %s: %w", key, err)
	}
	return true, nil
}

// ListKeys returns all store keys under the configured prefix. Used by
// operational tooling; the pipeline itself addresses known keys directly.
func (s *CloudStorageStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string

	it := s.client.Bucket(s.bucketName).Objects(ctx, &storage.Query{Prefix: s.prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		name := attrs.Name
		name = name[len(s.prefix):]
		if len(name) > len(".json") && name[len(name)-len(".json"):] == ".json" {
			keys = append(keys, name[:len(name)-len(".json")])
		}
	}

	return keys, nil
}

func (s *CloudStorageStore) Close() error {
	return s.client.Close()
}
