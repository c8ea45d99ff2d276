package imageprocessor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	path := ObjectPath(now, "abc-123", ".png")
	assert.Equal(t, "uploads/posts/2025/03/abc-123.png", path)
}

func TestThumbnailPathFor(t *testing.T) {
	assert.Equal(t, "uploads/posts/2025/03/abc_thumb.jpg", ThumbnailPathFor("uploads/posts/2025/03/abc.png"))
	assert.Equal(t, "uploads/posts/2025/03/abc_thumb.jpg", ThumbnailPathFor("uploads/posts/2025/03/abc.jpeg"))
}

func TestTakenAtWithoutExif(t *testing.T) {
	assert.Nil(t, TakenAt([]byte("not an image")))
	assert.Nil(t, TakenAt(nil))
}
