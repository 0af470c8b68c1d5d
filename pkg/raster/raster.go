// Package raster renders stroke samples into fixed-size grayscale bitmaps.
//
// Rendering is deliberately simple: points are scaled from the normalized
// [0, 1] square to [0, N-1] pixel space by truncation, consecutive points are
// joined with 1-pixel Bresenham segments, and every touched pixel is set to
// full intensity. There is no antialiasing and no blending, so a rendered
// image contains only the values 0 and 255.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/matzehuels/strokeset/pkg/stroke"
)

// DefaultSize is the edge length of rendered images in pixels.
const DefaultSize = 32

// Ink and Background are the only two intensities a rendered image contains.
var (
	Ink        = color.Gray{Y: 255}
	Background = color.Gray{Y: 0}
)

// coordLimit keeps scaled coordinates well inside the int range; anything
// beyond it is off-canvas anyway.
const coordLimit = 1 << 16

// Rasterize renders s onto a new size×size canvas.
//
// Strokes are drawn in order onto the same canvas. A stroke with two or more
// points becomes connected line segments, a stroke with a single point lights
// exactly one pixel, and an empty stroke draws nothing. Pixels that fall
// outside the canvas are dropped.
func Rasterize(s stroke.Sample, size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for _, st := range s.Strokes {
		DrawStroke(img, st)
	}
	return img
}

// DrawStroke draws one stroke onto img, scaling by the image width.
func DrawStroke(img *image.Gray, st stroke.Stroke) {
	size := img.Bounds().Dx()
	switch len(st) {
	case 0:
		return
	case 1:
		x, y := Scale(st[0], size)
		img.SetGray(x, y, Ink)
		return
	}

	x0, y0 := Scale(st[0], size)
	for _, p := range st[1:] {
		x1, y1 := Scale(p, size)
		drawLine(img, x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

// Scale maps a normalized point to pixel coordinates on a size×size canvas,
// truncating toward zero. NaN coordinates map to 0.
func Scale(p stroke.Point, size int) (x, y int) {
	return scaleCoord(p.X, size), scaleCoord(p.Y, size)
}

func scaleCoord(v float64, size int) int {
	if math.IsNaN(v) {
		return 0
	}
	v *= float64(size - 1)
	return int(max(-coordLimit, min(v, coordLimit)))
}

// drawLine sets every pixel on the Bresenham segment between (x0,y0) and
// (x1,y1), endpoints included.
func drawLine(img *image.Gray, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		img.SetGray(x0, y0, Ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// InkCount returns the number of non-background pixels in img.
func InkCount(img *image.Gray) int {
	n := 0
	for _, v := range img.Pix {
		if v != Background.Y {
			n++
		}
	}
	return n
}
