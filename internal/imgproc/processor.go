// Package imgproc turns uploaded images into the WebP display and thumbnail
// variants served by the public galleries.
package imgproc

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	_ "golang.org/x/image/webp" // register WebP decoding
)

const (
	// DisplayWidth bounds the gallery/modal variant. Smaller originals are
	// never upscaled.
	DisplayWidth = 1200
	// ThumbWidth bounds the grid preview variant.
	ThumbWidth = 400

	// MaxDimension rejects absurdly large inputs before a full decode to
	// bound memory use.
	MaxDimension = 16000

	// largeFileBytes is the size above which the display variant trades
	// quality for encode speed.
	largeFileBytes = 10 << 20

	displayQuality      = 80
	displayQualityLarge = 70
	thumbQuality        = 70
)

// ErrTooManyPixels marks inputs whose pixel dimensions exceed MaxDimension.
var ErrTooManyPixels = errors.New("image dimensions exceed the processing limit")

// Variants holds the encoded WebP outputs for one source image.
type Variants struct {
	Display   []byte
	Thumbnail []byte

	// DisplayQuality records the quality actually chosen for the display
	// variant (adaptive on input size).
	DisplayQuality int
}

// Render decodes src and produces the display and thumbnail WebP variants.
// The display variant is width-bounded to DisplayWidth, the thumbnail to
// ThumbWidth; neither is ever upscaled. Quality drops for originals larger
// than 10MiB to keep latency acceptable on big uploads.
func Render(src []byte) (*Variants, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "reading image header")
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, errors.Wrapf(ErrTooManyPixels, "%dx%d", cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}

	quality := displayQuality
	if len(src) > largeFileBytes {
		quality = displayQualityLarge
	}

	display, err := encodeBounded(img, DisplayWidth, quality)
	if err != nil {
		return nil, errors.Wrap(err, "encoding display variant")
	}
	thumb, err := encodeBounded(img, ThumbWidth, thumbQuality)
	if err != nil {
		return nil, errors.Wrap(err, "encoding thumbnail variant")
	}

	return &Variants{Display: display, Thumbnail: thumb, DisplayQuality: quality}, nil
}

// encodeBounded resizes img down to maxWidth (keeping aspect ratio, never
// upscaling) and encodes it as lossy WebP.
func encodeBounded(img image.Image, maxWidth, quality int) ([]byte, error) {
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
