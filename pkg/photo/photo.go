// Package photo normalizes uploaded profile photos.
package photo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// MaxSide bounds the width and height of stored photos.
const MaxSide = 512

// SaveProfilePhoto decodes an uploaded image, applies its EXIF orientation,
// fits it into MaxSide x MaxSide and writes it to dst as JPEG.
func SaveProfilePhoto(src io.Reader, dst string) error {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > MaxSide || b.Dy() > MaxSide {
		img = imaging.Fit(img, MaxSide, MaxSide, imaging.Lanczos)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}
	return nil
}
