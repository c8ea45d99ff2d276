// Package imageprocessor stores uploaded post images on disk, derives a
// thumbnail variant and captures the EXIF taken-at timestamp when present.
package imageprocessor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
)

const (
	// PostImageDir is the web root for stored post images
	PostImageDir = "uploads/posts"

	thumbnailWidth = 360
)

// Result describes a stored post image.
type Result struct {
	// Path is the web-relative path of the stored original
	Path string
	// ThumbnailPath is empty when the source format cannot be re-encoded
	ThumbnailPath string
	// TakenAt is the EXIF capture time, if the image carries one
	TakenAt *time.Time
}

// ObjectPath builds the relative storage path for an upload:
// uploads/posts/YYYY/MM/<name><ext>.
func ObjectPath(now time.Time, name, ext string) string {
	return fmt.Sprintf("%s/%04d/%02d/%s%s", PostImageDir, now.Year(), int(now.Month()), name, ext)
}

// ThumbnailPathFor derives the thumbnail path from an original path. The
// thumbnail is always a JPEG.
func ThumbnailPathFor(originalPath string) string {
	ext := filepath.Ext(originalPath)
	return strings.TrimSuffix(originalPath, ext) + "_thumb.jpg"
}

// TakenAt extracts the EXIF capture timestamp from raw image bytes.
// Returns nil when the image carries no usable EXIF block.
func TakenAt(data []byte) *time.Time {
	meta, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	taken, err := meta.DateTime()
	if err != nil {
		return nil
	}
	return &taken
}

// StorePostImage writes the uploaded bytes under PostImageDir with a UUID
// filename and derives a thumbnail when the format is decodable. The
// original is stored byte-for-byte; only the thumbnail is re-encoded.
func StorePostImage(data []byte, filename string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String()
	relPath := ObjectPath(time.Now(), name, ext)

	if err := os.MkdirAll(filepath.Dir(relPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(relPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	result := &Result{
		Path:    relPath,
		TakenAt: TakenAt(data),
	}

	// WEBP and friends are not decodable here; the original alone is fine
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return result, nil
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbPath := ThumbnailPathFor(relPath)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(85)); err != nil {
		return result, nil
	}
	result.ThumbnailPath = thumbPath

	return result, nil
}

// DeletePostImage removes a stored original and its thumbnail, ignoring
// files that are already gone.
func DeletePostImage(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
	_ = os.Remove(ThumbnailPathFor(path))
}
