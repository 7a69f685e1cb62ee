package storage

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"velarias-backend/internal/config"
)

// bucketSetupTimeout bounds the startup bucket check so a wrong endpoint
// fails fast instead of hanging the server boot.
const bucketSetupTimeout = 10 * time.Second

// NewMinioClient connects to the object store backing the remote transform
// pipeline and makes sure the image bucket exists.
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to object store")
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketSetupTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, errors.Wrapf(err, "checking bucket %q", cfg.MinioBucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "creating bucket %q", cfg.MinioBucket)
		}
		log.Info().Str("bucket", cfg.MinioBucket).Msg("created image bucket")
	}
	return client, nil
}
