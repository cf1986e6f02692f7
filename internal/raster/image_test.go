package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestDecodeFlattensTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := decode(buf.Bytes(), white)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(3, 1))
}

func TestDecodeErrors(t *testing.T) {
	_, err := decode(nil, white)
	assert.ErrorIs(t, err, ErrEmptyCapture)

	_, err = decode([]byte("not a png"), white)
	assert.ErrorIs(t, err, ErrColorFormat)
}

func TestDownscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	same, f := Downscale(img, 0)
	assert.Same(t, img, same)
	assert.Equal(t, 1.0, f)

	small, f := Downscale(img, 20000)
	assert.Equal(t, 200, small.Bounds().Dx())
	assert.Equal(t, 100, small.Bounds().Dy())
	assert.InDelta(t, 0.5, f, 1e-9)
}

func TestMountAndClose(t *testing.T) {
	s, err := Mount("<html><body><div id=\"cv-preview\">x</div></body></html>")
	require.NoError(t, err)

	_, err = os.Stat(s.Path())
	require.NoError(t, err)
	assert.Contains(t, s.URL(), "file://")

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}
