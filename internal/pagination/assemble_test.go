package pagination

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func TestAssembleMultiPage(t *testing.T) {
	e := a4Engine(t, 0)
	img := solid(210, 700)
	plan, err := e.Plan(Bitmap{Image: img})
	require.NoError(t, err)
	require.Equal(t, 3, plan.Pages())

	a := &Assembler{
		Format:  A4,
		Quality: 0.95,
		Meta:    Metadata{Title: "Jane Roe CV", Author: "Jane Roe", Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	var buf bytes.Buffer
	pages, err := a.Assemble(&buf, Layer{
		Image:      img,
		Placements: plan.Placements,
		Links: []Link{
			{Href: "https://example.com/top", X: 10, Y: 10, W: 50, H: 10},
			// straddles the first page break
			{Href: "https://example.com/split", X: 10, Y: 290, W: 50, H: 20},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, 1, bytes.Count(out, []byte("/URI (https://example.com/top)")))
	assert.Equal(t, 2, bytes.Count(out, []byte("/URI (https://example.com/split)")))
	assert.Contains(t, buf.String(), "/Title (")
}

func TestAssembleNothingToPlace(t *testing.T) {
	a := &Assembler{Format: A4, Quality: 0.9}
	_, err := a.Assemble(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrEmptySource)
}

// opaque hides SubImage so crop has to copy.
type opaque struct{ image.Image }

func TestCropWithoutSubImage(t *testing.T) {
	band, err := crop(opaque{solid(10, 20)}, Placement{OffsetPx: 5, SlicePx: 10})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), band.Bounds())
	assert.Equal(t, color.RGBA{R: 3, G: 5, B: 200, A: 255}, band.At(3, 0))
}

func TestCropPastEnd(t *testing.T) {
	_, err := crop(solid(10, 20), Placement{OffsetPx: 20, SlicePx: 5})
	assert.ErrorIs(t, err, ErrEmptySource)
}

func gray(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 251)
	}
	return img
}

func TestCropSubPixelBand(t *testing.T) {
	// last band of a 1588x4492 capture on A4 is about 0.23px tall
	band, err := crop(gray(16, 4492), Placement{OffsetPx: 4491.771, SlicePx: 0.229})
	require.NoError(t, err)
	assert.Equal(t, 1, band.Bounds().Dy())
	assert.Equal(t, 4491, band.Bounds().Min.Y)
}

func TestCropCoversFractionalEdges(t *testing.T) {
	band, err := crop(gray(4, 100), Placement{OffsetPx: 10.4, SlicePx: 20.2})
	require.NoError(t, err)
	assert.Equal(t, 10, band.Bounds().Min.Y)
	assert.Equal(t, 31, band.Bounds().Max.Y)
}

// A4 at scale 2 gives 1588px wide captures, so bands are 2245.886px tall.
func TestAssembleUnevenScale(t *testing.T) {
	tests := []struct {
		name   string
		height int
	}{
		{"single page", 2000},
		{"just under one band", 2245},
		{"just over one band", 2246},
		{"two pages", 3500},
		{"just under two bands", 4491},
		{"sub-pixel third band", 4492},
		{"just over two bands", 4493},
		{"sub-pixel fourth band", 6738},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := a4Engine(t, 0)
			img := gray(1588, tt.height)
			plan, err := e.Plan(Bitmap{Image: img})
			require.NoError(t, err)

			want := int(math.Ceil(plan.ImageHeightMM / e.ContentHeight()))
			assert.Equal(t, want, plan.Pages())

			a := &Assembler{Format: A4, Quality: 0.5}
			pages, err := a.Assemble(&bytes.Buffer{}, Layer{Image: img, Placements: plan.Placements})
			require.NoError(t, err)
			assert.Equal(t, want, pages)
		})
	}
}

func TestAssembleFlowWithSubPixelBand(t *testing.T) {
	e := a4Engine(t, 0)
	header := gray(1588, 300)
	tall := gray(1588, 4492)

	items, err := e.Flow([]Source{Bitmap{Image: header}, Bitmap{Image: tall}}, 5)
	require.NoError(t, err)

	layers := []Layer{{Image: header}, {Image: tall}}
	for _, it := range items {
		layers[it.Source].Placements = append(layers[it.Source].Placements, it.Placement)
	}
	a := &Assembler{Format: A4, Quality: 0.5}
	pages, err := a.Assemble(&bytes.Buffer{}, layers...)
	require.NoError(t, err)
	// header on page 1, the tall source starts on page 2 and spans three pages
	assert.Equal(t, 4, pages)
}
