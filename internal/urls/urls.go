// Package urls derives optimized and thumbnail URLs from stored image
// references without network calls. The derivation must stay in lockstep
// with the path conventions of the storage backends.
package urls

import (
	"path"
	"strings"
)

// Absolute resolves ref against the backend base URL. Absolute URLs pass
// through unchanged, root-relative paths get the base prefixed.
func Absolute(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	return base + "/" + ref
}

// Optimized maps a locally stored original path to its display variant:
// /images/proyectos/<type>/<name>.<ext> -> .../optimized/<name>.webp.
// Absolute URLs are returned unchanged.
func Optimized(ref string) string {
	return derive(ref, "optimized", "")
}

// Thumbnail maps a locally stored original path to its thumbnail variant:
// /images/proyectos/<type>/<name>.<ext> -> .../thumbnails/<name>-thumb.webp.
// Absolute URLs are returned unchanged.
func Thumbnail(ref string) string {
	return derive(ref, "thumbnails", "-thumb")
}

func derive(ref, dir, suffix string) string {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref
	}
	parent, file := path.Split(ref)
	base := strings.TrimSuffix(file, path.Ext(file))
	return parent + dir + "/" + base + suffix + ".webp"
}

// WithTransform injects a transformation token as the first path segment of
// u when u points at the transform service base. URLs on other hosts are
// returned unchanged.
func WithTransform(u, base, token string) string {
	if base == "" || token == "" || !strings.HasPrefix(u, base) {
		return u
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(u, base), "/")
	return strings.TrimSuffix(base, "/") + "/" + token + "/" + rest
}
