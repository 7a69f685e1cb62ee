// Package storage persists uploaded images and derives their public URLs.
// Two interchangeable backends implement the same contract: a local eager
// transformer and a MinIO-backed store fronted by an on-the-fly image proxy.
package storage

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"velarias-backend/internal/models"
)

// UploadFile is one raw uploaded image, already read into memory.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// TransformStore persists one uploaded image durably and returns immediately
// GET-able display and thumbnail URLs for it.
//
// Transform failures (undecodable input, oversized dimensions, encoder
// errors) never fail the file: the result degrades to the original bytes'
// URL for both variants, with Degraded and Reason set, so the caller can log
// and count it. An error return means the original bytes themselves could
// not be stored.
type TransformStore interface {
	Store(ctx context.Context, category string, file UploadFile) (*models.ProcessedImage, error)
}

// storageName builds the durable object name for an upload. Names are
// content-addressed by upload timestamp and slugged base name, so files are
// immutable once written and derived variant names are deterministic.
func storageName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(original, filepath.Ext(original))
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + slug(base) + ext
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
