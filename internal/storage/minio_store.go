package storage

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"velarias-backend/internal/models"
	"velarias-backend/internal/urls"
)

// Transform tokens understood by the image proxy fronting the bucket. The
// proxy resizes on first fetch and caches the result, so only the original
// bytes are ever uploaded.
const (
	displayToken      = "t_w1200,f_webp,q_80"
	displayTokenLarge = "t_w1200,f_webp,q_70"
	thumbToken        = "t_w400,f_webp,q_70"

	largeFileBytes = 10 << 20
)

// RemoteTransformStore uploads originals once to MinIO and derives the
// display and thumbnail URLs by injecting a transformation token path
// segment against the public transform base URL.
type RemoteTransformStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewRemoteTransformStore creates a store writing to the given bucket,
// publicly reachable through baseURL.
func NewRemoteTransformStore(client *minio.Client, bucket, baseURL string) *RemoteTransformStore {
	return &RemoteTransformStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Store uploads the original bytes and returns token-derived variant URLs.
// The quality token adapts to the original size, mirroring the eager
// backend's policy.
func (s *RemoteTransformStore) Store(ctx context.Context, category string, file UploadFile) (*models.ProcessedImage, error) {
	key := path.Join("proyectos", category, storageName(file.Name))

	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return nil, errors.Wrap(err, "uploading to object store")
	}

	token := displayToken
	if len(file.Data) > largeFileBytes {
		token = displayTokenLarge
	}

	original := s.baseURL + "/" + key
	return &models.ProcessedImage{
		OriginalRef:  file.Name,
		StorageRef:   key,
		DisplayURL:   urls.WithTransform(original, s.baseURL, token),
		ThumbnailURL: urls.WithTransform(original, s.baseURL, thumbToken),
	}, nil
}
