package render

import (
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// FormatFromPath picks the image encoding from the file extension. A path
// without an extension is encoded as PNG.
func FormatFromPath(path string) (imaging.Format, error) {
	if filepath.Ext(path) == "" {
		return imaging.PNG, nil
	}

	return imaging.FormatFromFilename(path)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	return imaging.Encode(w, img, format, imaging.JPEGQuality(95))
}
