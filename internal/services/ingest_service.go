package services

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"velarias-backend/internal/metrics"
	"velarias-backend/internal/models"
	"velarias-backend/internal/storage"
)

// DefaultMaxFileBytes is the per-file upload ceiling enforced before any
// processing starts.
const DefaultMaxFileBytes = 50 << 20

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true,
	"image/gif": true, "image/webp": true,
}

// IngestService runs the image ingestion pipeline: validate a batch of
// uploaded files, store each one through the configured TransformStore and
// collect the resulting URL pairs in submission order.
type IngestService struct {
	store     storage.TransformStore
	collector *metrics.Collector

	// MaxFileBytes is the per-file size ceiling. Exposed for tests.
	MaxFileBytes int
}

// NewIngestService creates an IngestService on top of the given store.
// collector may be nil.
func NewIngestService(store storage.TransformStore, collector *metrics.Collector) *IngestService {
	return &IngestService{
		store:        store,
		collector:    collector,
		MaxFileBytes: DefaultMaxFileBytes,
	}
}

// Ingest turns N uploaded images into N ProcessedImage results, preserving
// submission order. Pre-flight validation (empty batch, file type, file
// size) rejects the whole batch before any processing; per-file transform
// failures degrade that file to its original URL and the batch continues.
// Files are processed sequentially to bound peak memory.
func (s *IngestService) Ingest(ctx context.Context, category string, files []storage.UploadFile) ([]models.ProcessedImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if err := s.validate(files); err != nil {
		return nil, err
	}
	category = models.NormalizeCategory(category)

	results := make([]models.ProcessedImage, 0, len(files))
	for _, f := range files {
		start := time.Now()
		processed, err := s.store.Store(ctx, category, f)
		if err != nil {
			return nil, errors.Wrapf(err, "storing %s", f.Name)
		}
		if processed.Degraded {
			s.collector.ObserveFallback(category)
		} else {
			s.collector.ObserveProcessed(category, time.Since(start).Seconds(), processed.SavedBytes)
			log.Info().
				Str("file", f.Name).
				Str("category", category).
				Int("bytes", len(f.Data)).
				Dur("took", time.Since(start)).
				Msg("image ingested")
		}
		results = append(results, *processed)
	}
	return results, nil
}

// validate fail-fasts the batch at the boundary: every file's extension and
// MIME type must both be an allowed image format, and no file may exceed the
// size ceiling. Size violations name the offending files so the user knows
// which ones to remove.
func (s *IngestService) validate(files []storage.UploadFile) error {
	var oversize []string
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !allowedImageExts[ext] || !allowedImageMIMEs[strings.ToLower(f.ContentType)] {
			return errors.Wrap(ErrUnsupportedType, f.Name)
		}
		if len(f.Data) > s.MaxFileBytes {
			oversize = append(oversize, f.Name)
		}
	}
	if len(oversize) > 0 {
		return errors.Wrap(ErrFileTooLarge, strings.Join(oversize, ", "))
	}
	return nil
}
