package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpires(t *testing.T) {
	c, err := NewTTLCache[string](2, time.Minute)
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c.setClock(func() time.Time { return now })

	c.Set("a", "tree-a")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "tree-a", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheEvictsLeastRecent(t *testing.T) {
	c, err := NewTTLCache[int](2, time.Hour)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheSetIfUnchanged(t *testing.T) {
	c, err := NewTTLCache[string](4, time.Hour)
	require.NoError(t, err)

	gen := c.Generation("slug")
	assert.True(t, c.SetIfUnchanged("slug", gen, "fresh"))
	v, ok := c.Get("slug")
	require.True(t, ok)
	assert.Equal(t, "fresh", v)

	// a delete between reading the generation and storing drops the store
	gen = c.Generation("slug")
	c.Delete("slug")
	assert.False(t, c.SetIfUnchanged("slug", gen, "stale"))
	_, ok = c.Get("slug")
	assert.False(t, ok)

	// other keys are unaffected
	other := c.Generation("other")
	c.Delete("slug")
	assert.True(t, c.SetIfUnchanged("other", other, "x"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "مقدمة-في-البرمجة", Slugify("مقدمة في البرمجة!"))
	assert.Equal(t, "go-1-25-notes", Slugify("  Go 1.25 -- Notes "))
	assert.Equal(t, "", Slugify("!!!"))
	assert.LessOrEqual(t, len([]rune(Slugify(strings.Repeat("ب", 100)))), maxSlugRunes)
}

func TestNewSlugIsUnique(t *testing.T) {
	a := NewSlug("الدرس الأول")
	b := NewSlug("الدرس الأول")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "الدرس-الأول-"))
	assert.Len(t, NewSlug("?!"), 8)
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("**مرحبا** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>مرحبا</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdownImagesAndVideos(t *testing.T) {
	out := string(RenderMarkdown("![صورة](https://example.com/a.png)\n\nhttps://youtu.be/abc_123"))
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, "https://www.youtube.com/embed/abc_123")
}
