package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"velarias-backend/internal/imgproc"
	"velarias-backend/internal/models"
	"velarias-backend/internal/urls"
)

// PublicImagePrefix is the URL prefix under which the uploads directory is
// served as static assets.
const PublicImagePrefix = "/images"

// LocalTransformStore keeps originals and eagerly transformed variants on
// local disk:
//
//	<root>/proyectos/<category>/<name>.<ext>
//	<root>/proyectos/<category>/optimized/<name>.webp
//	<root>/proyectos/<category>/thumbnails/<name>-thumb.webp
//
// URL derivation from a stored original path is a pure string transformation
// (see the urls package), usable by any reader that only has the path.
type LocalTransformStore struct {
	root string
}

// NewLocalTransformStore creates a store rooted at the given uploads
// directory.
func NewLocalTransformStore(root string) *LocalTransformStore {
	return &LocalTransformStore{root: root}
}

// Store writes the original upload plus its two WebP variants. A transform
// failure still stores the original and degrades both URLs to it.
func (s *LocalTransformStore) Store(_ context.Context, category string, file UploadFile) (*models.ProcessedImage, error) {
	name := storageName(file.Name)
	relDir := filepath.Join("proyectos", category)
	absDir := filepath.Join(s.root, relDir)

	for _, d := range []string{absDir, filepath.Join(absDir, "optimized"), filepath.Join(absDir, "thumbnails")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating upload directory")
		}
	}
	if err := os.WriteFile(filepath.Join(absDir, name), file.Data, 0o644); err != nil {
		return nil, errors.Wrap(err, "writing original file")
	}

	ref := path.Join(PublicImagePrefix, "proyectos", category, name)
	result := &models.ProcessedImage{OriginalRef: file.Name, StorageRef: ref}

	v, err := imgproc.Render(file.Data)
	if err != nil {
		return s.degrade(result, category, ref, err), nil
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	optimizedPath := filepath.Join(absDir, "optimized", base+".webp")
	thumbPath := filepath.Join(absDir, "thumbnails", base+"-thumb.webp")
	if err := os.WriteFile(optimizedPath, v.Display, 0o644); err != nil {
		return s.degrade(result, category, ref, err), nil
	}
	if err := os.WriteFile(thumbPath, v.Thumbnail, 0o644); err != nil {
		return s.degrade(result, category, ref, err), nil
	}

	result.DisplayURL = urls.Optimized(ref)
	result.ThumbnailURL = urls.Thumbnail(ref)
	result.SavedBytes = int64(len(file.Data) - len(v.Display))
	return result, nil
}

func (s *LocalTransformStore) degrade(p *models.ProcessedImage, category, ref string, cause error) *models.ProcessedImage {
	log.Warn().Err(cause).Str("file", p.OriginalRef).Str("category", category).Str("ref", ref).
		Msg("image transform failed, serving original bytes")
	p.DisplayURL = ref
	p.ThumbnailURL = ref
	p.Degraded = true
	p.Reason = cause.Error()
	return p
}
