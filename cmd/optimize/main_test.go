package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 96, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestProcessFileWritesVariants(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "1700000000000-terraza.jpg")
	require.NoError(t, os.WriteFile(original, jpegBytes(t, 1600, 900), 0o644))

	res, err := processFile(original)
	require.NoError(t, err)
	assert.False(t, res.skipped)
	assert.Positive(t, res.originalSize)
	assert.Positive(t, res.optimizedSize)

	assert.FileExists(t, filepath.Join(dir, "optimized", "1700000000000-terraza.webp"))
	assert.FileExists(t, filepath.Join(dir, "thumbnails", "1700000000000-terraza-thumb.webp"))
}

func TestProcessFileRerunSkipsAndKeepsVariantBytes(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "1700000000000-nave.jpg")
	require.NoError(t, os.WriteFile(original, jpegBytes(t, 1600, 900), 0o644))

	first, err := processFile(original)
	require.NoError(t, err)
	require.False(t, first.skipped)

	optimizedPath := filepath.Join(dir, "optimized", "1700000000000-nave.webp")
	thumbPath := filepath.Join(dir, "thumbnails", "1700000000000-nave-thumb.webp")
	optimizedBefore, err := os.ReadFile(optimizedPath)
	require.NoError(t, err)
	thumbBefore, err := os.ReadFile(thumbPath)
	require.NoError(t, err)

	second, err := processFile(original)
	require.NoError(t, err)
	assert.True(t, second.skipped, "a re-run over existing variants must be a no-op")

	optimizedAfter, err := os.ReadFile(optimizedPath)
	require.NoError(t, err)
	thumbAfter, err := os.ReadFile(thumbPath)
	require.NoError(t, err)
	assert.Equal(t, optimizedBefore, optimizedAfter)
	assert.Equal(t, thumbBefore, thumbAfter)
}

func TestProcessFileRegeneratesWhenOneVariantMissing(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "1700000000000-cochera.jpg")
	require.NoError(t, os.WriteFile(original, jpegBytes(t, 800, 600), 0o644))

	first, err := processFile(original)
	require.NoError(t, err)
	require.False(t, first.skipped)

	thumbPath := filepath.Join(dir, "thumbnails", "1700000000000-cochera-thumb.webp")
	require.NoError(t, os.Remove(thumbPath))

	again, err := processFile(original)
	require.NoError(t, err)
	assert.False(t, again.skipped)
	assert.FileExists(t, thumbPath)
}
