package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/logger"
)

// GCSStore keeps files as <module>/<name> objects in one bucket.
type GCSStore struct {
	client     *storage.Client
	bucketName string
}

func NewGCSStore(ctx context.Context, bucketName, credentialsPath string, corsOrigins []string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	s := &GCSStore{client: client, bucketName: bucketName}
	if err := s.setBucketCORS(ctx, corsOrigins); err != nil {
		logger.Warn("Failed to set bucket CORS configuration: %v", err)
	}

	return s, nil
}

func (s *GCSStore) setBucketCORS(ctx context.Context, origins []string) error {
	bucket := s.client.Bucket(s.bucketName)

	attrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}
	if len(attrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          3600,
			Methods:         []string{"GET", "HEAD"},
			Origins:         origins,
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %v", err)
	}
	return nil
}

func (s *GCSStore) Save(ctx context.Context, module, name, contentType string, r io.Reader) (*service.StoredFile, error) {
	if err := ValidateKey(module, name); err != nil {
		return nil, err
	}

	w := s.client.Bucket(s.bucketName).Object(module + "/" + name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	size, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %v", err)
	}

	return &service.StoredFile{
		Module:      module,
		Name:        name,
		URL:         s.URL(module, name),
		ContentType: contentType,
		Size:        size,
		ModifiedAt:  w.Attrs().Updated,
	}, nil
}

func (s *GCSStore) List(ctx context.Context, module string) ([]service.StoredFile, error) {
	if !service.IsValidModule(module) {
		return nil, fmt.Errorf("unknown module %q", module)
	}

	it := s.client.Bucket(s.bucketName).Objects(ctx, &storage.Query{Prefix: module + "/"})
	files := []service.StoredFile{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %v", err)
		}

		name := strings.TrimPrefix(attrs.Name, module+"/")
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		files = append(files, service.StoredFile{
			Module:      module,
			Name:        name,
			URL:         s.URL(module, name),
			ContentType: attrs.ContentType,
			Size:        attrs.Size,
			ModifiedAt:  attrs.Updated,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
	return files, nil
}

func (s *GCSStore) Delete(ctx context.Context, module, name string) error {
	if err := ValidateKey(module, name); err != nil {
		return err
	}
	err := s.client.Bucket(s.bucketName).Object(module + "/" + name).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return service.ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (s *GCSStore) URL(module, name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s/%s", s.bucketName, module, name)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
