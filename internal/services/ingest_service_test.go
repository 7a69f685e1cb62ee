package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velarias-backend/internal/models"
	"velarias-backend/internal/storage"
)

// stubStore records calls and degrades files listed in degrade, mimicking
// both storage backends' fallback behavior.
type stubStore struct {
	stored     []string
	categories []string
	degrade    map[string]bool
	err        error
}

func (s *stubStore) Store(_ context.Context, category string, f storage.UploadFile) (*models.ProcessedImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.stored = append(s.stored, f.Name)
	s.categories = append(s.categories, category)

	ref := "/images/proyectos/" + category + "/" + f.Name
	if s.degrade[f.Name] {
		return &models.ProcessedImage{
			OriginalRef: f.Name, StorageRef: ref,
			DisplayURL: ref, ThumbnailURL: ref,
			Degraded: true, Reason: "decode failed",
		}, nil
	}
	return &models.ProcessedImage{
		OriginalRef: f.Name, StorageRef: ref,
		DisplayURL:   "/images/proyectos/" + category + "/optimized/" + f.Name + ".webp",
		ThumbnailURL: "/images/proyectos/" + category + "/thumbnails/" + f.Name + "-thumb.webp",
	}, nil
}

func upload(name, contentType string, size int) storage.UploadFile {
	return storage.UploadFile{Name: name, ContentType: contentType, Data: make([]byte, size)}
}

func TestIngestPreservesSubmissionOrder(t *testing.T) {
	store := &stubStore{}
	svc := NewIngestService(store, nil)

	files := []storage.UploadFile{
		upload("c.jpg", "image/jpeg", 10),
		upload("a.png", "image/png", 10),
		upload("b.webp", "image/webp", 10),
	}
	results, err := svc.Ingest(context.Background(), "residential", files)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "c.jpg", results[0].OriginalRef)
	assert.Equal(t, "a.png", results[1].OriginalRef)
	assert.Equal(t, "b.webp", results[2].OriginalRef)
	assert.Equal(t, []string{"c.jpg", "a.png", "b.webp"}, store.stored)
}

func TestIngestRejectsEmptyBatch(t *testing.T) {
	svc := NewIngestService(&stubStore{}, nil)

	_, err := svc.Ingest(context.Background(), "residential", nil)
	assert.True(t, errors.Is(err, ErrNoFiles))
}

func TestIngestRejectsWholeBatchOnBadExtension(t *testing.T) {
	store := &stubStore{}
	svc := NewIngestService(store, nil)

	files := []storage.UploadFile{
		upload("fine.jpg", "image/jpeg", 10),
		upload("malware.exe", "image/jpeg", 10),
	}
	_, err := svc.Ingest(context.Background(), "residential", files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.Empty(t, store.stored, "no file may be processed after a type rejection")
}

func TestIngestRejectsMIMEMismatch(t *testing.T) {
	svc := NewIngestService(&stubStore{}, nil)

	files := []storage.UploadFile{upload("photo.jpg", "application/octet-stream", 10)}
	_, err := svc.Ingest(context.Background(), "residential", files)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestIngestRejectsOversizeFilesByName(t *testing.T) {
	store := &stubStore{}
	svc := NewIngestService(store, nil)
	svc.MaxFileBytes = 100

	files := []storage.UploadFile{
		upload("small.jpg", "image/jpeg", 50),
		upload("huge.png", "image/png", 101),
	}
	_, err := svc.Ingest(context.Background(), "residential", files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileTooLarge))
	assert.Contains(t, err.Error(), "huge.png")
	assert.Empty(t, store.stored)
}

func TestIngestFallsBackToResidentialCategory(t *testing.T) {
	store := &stubStore{}
	svc := NewIngestService(store, nil)

	_, err := svc.Ingest(context.Background(), "penthouse", []storage.UploadFile{
		upload("a.jpg", "image/jpeg", 10),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"residential"}, store.categories)
}

func TestIngestContinuesPastDegradedFiles(t *testing.T) {
	store := &stubStore{degrade: map[string]bool{"corrupt.png": true}}
	svc := NewIngestService(store, nil)

	files := []storage.UploadFile{
		upload("good.jpg", "image/jpeg", 10),
		upload("corrupt.png", "image/png", 10),
	}
	results, err := svc.Ingest(context.Background(), "residential", files)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Degraded)
	assert.NotEqual(t, results[0].DisplayURL, results[0].ThumbnailURL)

	assert.True(t, results[1].Degraded)
	assert.Equal(t, results[1].StorageRef, results[1].DisplayURL)
	assert.Equal(t, results[1].StorageRef, results[1].ThumbnailURL)
}

func TestIngestAbortsOnStorageFailure(t *testing.T) {
	store := &stubStore{err: errors.New("bucket unreachable")}
	svc := NewIngestService(store, nil)

	_, err := svc.Ingest(context.Background(), "residential", []storage.UploadFile{
		upload("a.jpg", "image/jpeg", 10),
	})
	assert.Error(t, err)
}
