// Package printer produces a print-ready PDF from the print document using the
// browser's own print engine. It is independent of the raster pipeline.
package printer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/khrees2412/cvgen/internal/browser"
	"github.com/khrees2412/cvgen/internal/pagination"
	"github.com/khrees2412/cvgen/internal/render"
	"github.com/khrees2412/cvgen/pkg/models"
)

// ErrPrintContextUnavailable is returned when no print context could be opened.
var ErrPrintContextUnavailable = errors.New("could not open a print context: make sure Chrome is installed or set chrome_path")

// Engine prints an HTML document to PDF bytes.
type Engine interface {
	PrintHTML(ctx context.Context, html string, format pagination.PageFormat) ([]byte, error)
}

// Print renders doc as a print document and hands it to eng.
func Print(ctx context.Context, eng Engine, doc models.Document, format pagination.PageFormat) ([]byte, error) {
	html, err := Document(doc, format)
	if err != nil {
		return nil, err
	}
	return eng.PrintHTML(ctx, html, format)
}

// Document is the standalone print document for doc.
func Document(doc models.Document, format pagination.PageFormat) (string, error) {
	return render.PrintDocument(doc, render.Options{
		PageWidthMM:  format.WidthMM,
		PageHeightMM: format.HeightMM,
		Format:       format.Name,
	})
}

// ChromePrinter prints through headless Chrome.
type ChromePrinter struct {
	opts    browser.Options
	timeout time.Duration
	log     *zap.Logger
}

func NewChromePrinter(opts browser.Options, timeout time.Duration, log *zap.Logger) *ChromePrinter {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChromePrinter{opts: opts, timeout: timeout, log: log}
}

func (p *ChromePrinter) PrintHTML(ctx context.Context, html string, format pagination.PageFormat) ([]byte, error) {
	start := time.Now()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	bctx, cancel := browser.NewContext(ctx, p.opts, p.log)
	defer cancel()
	if err := browser.Start(bctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrintContextUnavailable, err)
	}

	var pdf []byte
	err := chromedp.Run(bctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(format.WidthInches()).
				WithPaperHeight(format.HeightInches()).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	p.log.Info("print document rendered",
		zap.String("format", format.Name),
		zap.Int("pdf_size", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}
