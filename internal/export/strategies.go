package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khrees2412/cvgen/internal/pagination"
	"github.com/khrees2412/cvgen/internal/raster"
	"github.com/khrees2412/cvgen/internal/render"
	"github.com/khrees2412/cvgen/pkg/models"
)

// job is the per-run state the strategies share.
type job struct {
	run    *run
	doc    models.Document
	format pagination.PageFormat
	engine pagination.Engine
	render render.Options
}

// exportPrimary captures the live preview surface and paginates it.
func (e *Exporter) exportPrimary(ctx context.Context, j *job) ([]byte, int, error) {
	surface, err := render.Surface(j.doc, j.render)
	if err != nil {
		return nil, 0, err
	}
	if err := render.Locate(surface, render.SurfaceID); err != nil {
		return nil, 0, err
	}
	layer, err := e.captureLayer(ctx, e.capturer, j, surface, render.ExpectedCounts(j.doc))
	if err != nil {
		return nil, 0, err
	}
	return e.assemble(j, layer)
}

// exportFallback loads the fallback capturer once and captures the static fragment.
func (e *Exporter) exportFallback(ctx context.Context, j *job) ([]byte, int, error) {
	lctx, cancel := context.WithTimeout(ctx, e.opts.FallbackLoadTimeout)
	capturer, err := e.fallback(lctx)
	cancel()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFallbackUnavailable, err)
	}
	if c, ok := capturer.(interface{ Close() error }); ok {
		j.run.acquire(c.Close)
	}

	fragment, err := render.Fragment(j.doc, j.render)
	if err != nil {
		return nil, 0, err
	}
	layer, err := e.captureLayer(ctx, capturer, j, fragment, nil)
	if err != nil {
		return nil, 0, err
	}
	return e.assemble(j, layer)
}

// exportSections captures every section on its own and flows them down the pages.
func (e *Exporter) exportSections(ctx context.Context, j *job) ([]byte, int, error) {
	sections, err := render.Sections(j.doc, j.render)
	if err != nil {
		return nil, 0, err
	}
	engine, err := pagination.NewEngine(j.format, e.opts.SectionMarginMM)
	if err != nil {
		return nil, 0, err
	}
	// sections are laid out at the printable width of the section margin
	ropts := j.render
	ropts.PageWidthMM = engine.ContentWidth()

	captures := make([]*raster.Capture, 0, len(sections))
	srcs := make([]pagination.Source, 0, len(sections))
	for _, s := range sections {
		html, err := annotate(s.HTML)
		if err != nil {
			return nil, 0, err
		}
		c, err := e.capture(ctx, e.capturer, j, html, ropts, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("section %s: %w", s.Name, err)
		}
		captures = append(captures, c)
		srcs = append(srcs, pagination.Bitmap{Image: c.Image})
	}

	items, err := engine.Flow(srcs, e.opts.SectionSpacingMM)
	if err != nil {
		return nil, 0, err
	}
	layers := make([]pagination.Layer, len(captures))
	for i, c := range captures {
		layers[i] = pagination.Layer{Image: c.Image, Links: scaleLinks(c)}
	}
	for _, it := range items {
		layers[it.Source].Placements = append(layers[it.Source].Placements, it.Placement)
	}
	j.run.log.Debug("sections flowed", zap.Int("sections", len(sections)), zap.Int("placements", len(items)))
	return e.assemble(j, layers...)
}

// captureLayer annotates, captures and paginates one HTML document.
func (e *Exporter) captureLayer(ctx context.Context, c raster.Capturer, j *job, html string, expect map[string]int) (pagination.Layer, error) {
	annotated, err := annotate(html)
	if err != nil {
		return pagination.Layer{}, err
	}
	capture, err := e.capture(ctx, c, j, annotated, j.render, expect)
	if err != nil {
		return pagination.Layer{}, err
	}
	plan, err := j.engine.Plan(pagination.Bitmap{Image: capture.Image})
	if err != nil {
		return pagination.Layer{}, err
	}
	j.run.log.Debug("bitmap paginated",
		zap.Int("width_px", plan.SourceWidth),
		zap.Int("height_px", plan.SourceHeight),
		zap.Float64("image_height_mm", plan.ImageHeightMM),
		zap.Int("pages", plan.Pages()),
	)
	return pagination.Layer{Image: capture.Image, Placements: plan.Placements, Links: scaleLinks(capture)}, nil
}

// capture mounts html for the duration of the run and rasterizes it.
func (e *Exporter) capture(ctx context.Context, c raster.Capturer, j *job, html string, ropts render.Options, expect map[string]int) (*raster.Capture, error) {
	surface, err := raster.Mount(html)
	if err != nil {
		return nil, err
	}
	j.run.acquire(surface.Close)

	cctx, cancel := context.WithTimeout(ctx, e.opts.CaptureTimeout)
	defer cancel()
	capture, err := c.Capture(cctx, surface, raster.Request{
		SurfaceID:       render.SurfaceID,
		ViewportWidth:   int(ropts.WidthPx() + 0.5),
		Scale:           e.opts.Scale,
		Background:      e.opts.Background,
		Expect:          expect,
		ConvergeTimeout: e.opts.ConvergeTimeout,
	})
	if err != nil {
		return nil, err
	}
	if capture == nil || capture.Image == nil || capture.Image.Bounds().Empty() {
		return nil, raster.ErrEmptyCapture
	}
	return capture, nil
}

// annotate marks the surface's links so they survive rasterization.
func annotate(html string) (string, error) {
	out, _, err := render.AnnotateLinks(html, render.SurfaceID)
	return out, err
}

// scaleLinks converts CSS-pixel link boxes to bitmap pixels.
func scaleLinks(c *raster.Capture) []pagination.Link {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	links := make([]pagination.Link, 0, len(c.Links))
	for _, l := range c.Links {
		links = append(links, pagination.Link{
			Href: l.Href,
			X:    l.X * scale,
			Y:    l.Y * scale,
			W:    l.W * scale,
			H:    l.H * scale,
		})
	}
	return links
}
