package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// TightBounds returns the smallest rectangle holding every pixel that differs
// from background. An image with no such pixel keeps its full bounds.
func TightBounds(img image.Image, background color.Color) image.Rectangle {
	bounds := img.Bounds()
	br, bg, bb, ba := background.RGBA()

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	mark := func(x, y int) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	if rgba, ok := img.(*image.RGBA); ok {
		// Walk the pixel buffer directly; high DPI figures run to tens of
		// millions of pixels.
		want := [4]uint8{uint8(br >> 8), uint8(bg >> 8), uint8(bb >> 8), uint8(ba >> 8)}
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := rgba.Pix[(y-bounds.Min.Y)*rgba.Stride:]
			for x := 0; x < bounds.Dx(); x++ {
				px := row[4*x : 4*x+4]
				if px[0] != want[0] || px[1] != want[1] || px[2] != want[2] || px[3] != want[3] {
					mark(bounds.Min.X+x, y)
				}
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, a := img.At(x, y).RGBA()
				if r != br || g != bg || b != bb || a != ba {
					mark(x, y)
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return bounds
	}

	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Crop cuts img down to rect, re-based at the origin.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	if rect == img.Bounds() && rect.Min == (image.Point{}) {
		return img
	}

	return imaging.Crop(img, rect)
}
