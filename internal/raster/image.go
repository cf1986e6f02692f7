package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// decode turns captured PNG bytes into an opaque RGBA image flattened onto bg.
func decode(data []byte, bg color.RGBA) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyCapture
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrColorFormat, err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmptyCapture
	}
	return Flatten(src, bg), nil
}

// Flatten composites img over a solid background so no transparent pixel
// reaches the JPEG encoder.
func Flatten(img image.Image, bg color.RGBA) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Downscale shrinks img so it holds at most maxPixels, keeping the aspect
// ratio. It returns the image unchanged when it already fits, along with the
// applied factor.
func Downscale(img *image.RGBA, maxPixels int) (*image.RGBA, float64) {
	b := img.Bounds()
	px := b.Dx() * b.Dy()
	if maxPixels <= 0 || px <= maxPixels {
		return img, 1
	}
	f := math.Sqrt(float64(maxPixels) / float64(px))
	w := max(1, int(float64(b.Dx())*f))
	h := max(1, int(float64(b.Dy())*f))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, float64(w) / float64(b.Dx())
}
