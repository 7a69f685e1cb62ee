package urls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsolute(t *testing.T) {
	base := "http://localhost:3001"

	assert.Equal(t, "", Absolute(base, ""))
	assert.Equal(t, "https://cdn.example.com/a.webp", Absolute(base, "https://cdn.example.com/a.webp"))
	assert.Equal(t, "http://localhost:3001/images/a.jpg", Absolute(base, "/images/a.jpg"))
	assert.Equal(t, "http://localhost:3001/images/a.jpg", Absolute(base, "images/a.jpg"))
}

func TestOptimized(t *testing.T) {
	assert.Equal(t,
		"/images/proyectos/residential/optimized/1700000000000-casa.webp",
		Optimized("/images/proyectos/residential/1700000000000-casa.jpg"))

	// absolute URLs pass through untouched
	abs := "https://cdn.example.com/x/y.jpg"
	assert.Equal(t, abs, Optimized(abs))
	assert.Equal(t, "", Optimized(""))
}

func TestThumbnail(t *testing.T) {
	assert.Equal(t,
		"/images/proyectos/industrial/thumbnails/1700000000000-nave-thumb.webp",
		Thumbnail("/images/proyectos/industrial/1700000000000-nave.png"))

	abs := "https://cdn.example.com/x/y.jpg"
	assert.Equal(t, abs, Thumbnail(abs))
}

func TestDerivationIsExtensionAgnostic(t *testing.T) {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		got := Optimized("/images/proyectos/residential/pic" + ext)
		assert.Equal(t, "/images/proyectos/residential/optimized/pic.webp", got)
	}
}

func TestWithTransform(t *testing.T) {
	base := "https://img.example.com"

	assert.Equal(t,
		"https://img.example.com/t_w1200,f_webp,q_80/proyectos/residential/casa.jpg",
		WithTransform("https://img.example.com/proyectos/residential/casa.jpg", base, "t_w1200,f_webp,q_80"))

	// unrecognized hosts are untouched
	other := "https://images.unsplash.com/photo-123"
	assert.Equal(t, other, WithTransform(other, base, "t_w400,f_webp,q_70"))

	assert.Equal(t, "https://img.example.com/a.jpg", WithTransform("https://img.example.com/a.jpg", "", "t_w400"))
}
