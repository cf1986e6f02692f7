// Package pagination lays a tall source image out across fixed-size pages and
// assembles the result into a PDF.
package pagination

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Epsilon is the smallest leftover height, in millimetres, that still opens a page.
const Epsilon = 1e-6

var (
	ErrEmptySource   = errors.New("source has zero width or height")
	ErrInvalidMargin = errors.New("margin leaves no printable area")
)

// Source is anything with a pixel size: a captured bitmap or a measured fragment.
type Source interface {
	PixelSize() (width, height int)
}

// Bitmap adapts an image to Source.
type Bitmap struct {
	Image image.Image
}

func (b Bitmap) PixelSize() (int, int) {
	if b.Image == nil {
		return 0, 0
	}
	r := b.Image.Bounds()
	return r.Dx(), r.Dy()
}

// Size is a Source with fixed dimensions.
type Size struct{ Width, Height int }

func (s Size) PixelSize() (int, int) { return s.Width, s.Height }

// Placement is one band of the source placed on one page. Offsets and slice
// heights are in source pixels; X, Y, Width and Height are page millimetres.
type Placement struct {
	Page     int // 1-based
	OffsetPx float64
	SlicePx  float64
	X, Y     float64
	Width    float64
	Height   float64
	PxPerMM  float64
}

// Plan is the full layout of one source.
type Plan struct {
	Placements      []Placement
	SourceWidth     int
	SourceHeight    int
	ImageWidthMM    float64
	ImageHeightMM   float64
	ContentHeightMM float64
}

// Pages is the number of pages the plan spans.
func (p Plan) Pages() int {
	if len(p.Placements) == 0 {
		return 0
	}
	return p.Placements[len(p.Placements)-1].Page
}

// Engine paginates sources onto one page format with a uniform margin.
type Engine struct {
	Format   PageFormat
	MarginMM float64
}

// NewEngine validates the margin against the format.
func NewEngine(format PageFormat, marginMM float64) (Engine, error) {
	if marginMM < 0 || 2*marginMM >= format.WidthMM || 2*marginMM >= format.HeightMM {
		return Engine{}, fmt.Errorf("%w: %.2fmm on %s", ErrInvalidMargin, marginMM, format.Name)
	}
	return Engine{Format: format, MarginMM: marginMM}, nil
}

// ContentWidth is the printable width in millimetres.
func (e Engine) ContentWidth() float64 { return e.Format.WidthMM - 2*e.MarginMM }

// ContentHeight is the printable height in millimetres.
func (e Engine) ContentHeight() float64 { return e.Format.HeightMM - 2*e.MarginMM }

// Plan scales src to the content width and cuts it into page-height bands.
// Band i starts at source row i*C*(H/imgHeight) and every band sits at the top
// margin of its own page, so no content is skipped or repeated.
func (e Engine) Plan(src Source) (Plan, error) {
	w, h := src.PixelSize()
	if w <= 0 || h <= 0 {
		return Plan{}, ErrEmptySource
	}

	imgW := e.ContentWidth()
	imgH := float64(h) * imgW / float64(w)
	c := e.ContentHeight()
	pxPerMM := float64(h) / imgH

	plan := Plan{
		SourceWidth:     w,
		SourceHeight:    h,
		ImageWidthMM:    imgW,
		ImageHeightMM:   imgH,
		ContentHeightMM: c,
	}

	if imgH <= c {
		plan.Placements = []Placement{{
			Page:    1,
			SlicePx: float64(h),
			X:       e.MarginMM,
			Y:       e.MarginMM,
			Width:   imgW,
			Height:  imgH,
			PxPerMM: pxPerMM,
		}}
		return plan, nil
	}

	bandPx := c * pxPerMM
	remaining := imgH
	for i := 0; remaining > Epsilon; i++ {
		offset := float64(i) * bandPx
		slice := math.Min(float64(h)-offset, bandPx)
		plan.Placements = append(plan.Placements, Placement{
			Page:     i + 1,
			OffsetPx: offset,
			SlicePx:  slice,
			X:        e.MarginMM,
			Y:        e.MarginMM,
			Width:    imgW,
			Height:   math.Min(c, remaining),
			PxPerMM:  pxPerMM,
		})
		remaining -= c
	}
	return plan, nil
}

// PageCount is the number of pages a plan of the given image height uses.
func PageCount(imageHeightMM, contentHeightMM float64) int {
	if imageHeightMM <= contentHeightMM {
		return 1
	}
	n := 0
	for remaining := imageHeightMM; remaining > Epsilon; remaining -= contentHeightMM {
		n++
	}
	return n
}
