package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Fit scales img down so that it fits in maxWidth x maxHeight. Smaller
// images and non-positive bounds return img unchanged.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxWidth <= 0 || maxHeight <= 0 || w == 0 || h == 0 {
		return img
	}
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scale := math.Min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	nw := clampDim(int(math.Round(float64(w)*scale)), maxWidth)
	nh := clampDim(int(math.Round(float64(h)*scale)), maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func clampDim(v, limit int) int {
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}

// Flatten composites img over a white background and returns an opaque RGB
// raster with its origin at 0,0.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
