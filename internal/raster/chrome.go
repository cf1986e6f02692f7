package raster

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/khrees2412/cvgen/internal/browser"
)

const (
	// maxCaptureSide is Chrome's largest compositor surface in device pixels.
	maxCaptureSide = 16384
	// minScale is the lowest scale worth capturing before giving up.
	minScale     = 0.5
	pollInterval = 50 * time.Millisecond
)

// ChromeOptions configures a ChromeCapturer.
type ChromeOptions struct {
	Browser   browser.Options
	MaxPixels int // decoded bitmaps above this are downscaled; 0 disables
}

// ChromeCapturer rasterizes surfaces in headless Chrome. Each Capture runs in
// its own browser so captures never share page state.
type ChromeCapturer struct {
	opts ChromeOptions
	log  *zap.Logger
}

func NewChromeCapturer(opts ChromeOptions, log *zap.Logger) *ChromeCapturer {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChromeCapturer{opts: opts, log: log}
}

// geometry is the surface measurement returned by measureJS.
type geometry struct {
	Found  bool    `json:"found"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Links  []Link  `json:"links"`
}

// measureJS hides excluded elements and reports the surface box and its link boxes.
const measureJS = `(() => {
  document.querySelectorAll('[data-capture-exclude="true"], [data-html2canvas-ignore="true"]').forEach(el => { el.style.display = 'none'; });
  const el = document.getElementById(%s);
  if (!el) return {found: false, x: 0, y: 0, width: 0, height: 0, links: []};
  const r = el.getBoundingClientRect();
  const sx = window.scrollX, sy = window.scrollY;
  const links = Array.from(el.querySelectorAll('a[href]')).map(a => {
    const b = a.getBoundingClientRect();
    return {Href: a.getAttribute('data-href') || a.href, X: b.left - r.left, Y: b.top - r.top, W: b.width, H: b.height};
  }).filter(l => l.W > 0 && l.H > 0);
  return {found: true, x: r.left + sx, y: r.top + sy, width: r.width, height: el.scrollHeight, links: links};
})()`

// countJS counts matches for each selector inside the surface.
const countJS = `(() => {
  const root = document.getElementById(%s) || document;
  const out = {};
  for (const sel of %s) out[sel] = root.querySelectorAll(sel).length;
  return out;
})()`

func (c *ChromeCapturer) Capture(ctx context.Context, s *Surface, req Request) (*Capture, error) {
	start := time.Now()
	if req.Scale <= 0 {
		req.Scale = 1
	}
	if req.ViewportWidth <= 0 {
		req.ViewportWidth = 794
	}

	bctx, cancel := browser.NewContext(ctx, c.opts.Browser, c.log)
	defer cancel()
	if err := browser.Start(bctx); err != nil {
		return nil, err
	}

	id, _ := json.Marshal(req.SurfaceID)
	selectors := make([]string, 0, len(req.Expect))
	for sel := range req.Expect {
		selectors = append(selectors, sel)
	}
	selJSON, _ := json.Marshal(selectors)

	var geo geometry
	out := &Capture{}
	bg := req.Background

	err := chromedp.Run(bctx,
		chromedp.EmulateViewport(int64(req.ViewportWidth), 1000),
		chromedp.Navigate(s.URL()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: int64(bg.R), G: int64(bg.G), B: int64(bg.B), A: float64(bg.A) / 255}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			probe := func(ctx context.Context) (map[string]int, error) {
				counts := map[string]int{}
				err := chromedp.Evaluate(fmt.Sprintf(countJS, id, selJSON), &counts).Do(ctx)
				return counts, err
			}
			ok, err := Converge(ctx, probe, req.Expect, req.ConvergeTimeout, pollInterval)
			if err != nil {
				return err
			}
			out.Converged = ok
			if !ok {
				c.log.Warn("surface did not converge, capturing current state",
					zap.Duration("timeout", req.ConvergeTimeout))
			}
			return nil
		}),
		chromedp.Evaluate(fmt.Sprintf(measureJS, id), &geo),
	)
	if err != nil {
		return nil, fmt.Errorf("prepare capture: %w", err)
	}
	if !geo.Found {
		return nil, fmt.Errorf("%w: #%s", ErrSurfaceNotFound, req.SurfaceID)
	}
	if geo.Width <= 0 || geo.Height <= 0 {
		return nil, fmt.Errorf("%w: surface measures %.0fx%.0f", ErrEmptyCapture, geo.Width, geo.Height)
	}

	scale := req.Scale
	if longest := math.Max(geo.Width, geo.Height) * scale; longest > maxCaptureSide {
		scale = maxCaptureSide / math.Max(geo.Width, geo.Height)
		if scale < minScale {
			return nil, fmt.Errorf("%w: %.0fx%.0f css px", ErrCaptureTooLarge, geo.Width, geo.Height)
		}
		c.log.Warn("reducing capture scale to fit", zap.Float64("requested", req.Scale), zap.Float64("scale", scale))
	}

	var data []byte
	err = chromedp.Run(bctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		data, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithCaptureBeyondViewport(true).
			WithFromSurface(true).
			WithClip(&page.Viewport{X: geo.X, Y: geo.Y, Width: geo.Width, Height: geo.Height, Scale: scale}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := decode(data, bg)
	if err != nil {
		return nil, err
	}
	img, factor := Downscale(img, c.opts.MaxPixels)
	if factor < 1 {
		c.log.Warn("downscaled capture to pixel budget", zap.Int("max_pixels", c.opts.MaxPixels), zap.Float64("factor", factor))
	}

	out.Image = img
	out.Scale = float64(img.Bounds().Dx()) / geo.Width
	out.CSSWidth = geo.Width
	out.CSSHeight = geo.Height
	out.Links = geo.Links

	c.log.Debug("surface captured",
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Int("links", len(geo.Links)),
		zap.Bool("converged", out.Converged),
		zap.Duration("duration", time.Since(start)),
	)
	return out, nil
}
