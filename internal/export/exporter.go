// Package export orchestrates PDF export: it captures the CV surface, falls
// back to a static rendering when that fails, paginates the bitmap and writes
// the file.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/khrees2412/cvgen/internal/document"
	"github.com/khrees2412/cvgen/internal/pagination"
	"github.com/khrees2412/cvgen/internal/raster"
	"github.com/khrees2412/cvgen/internal/render"
	"github.com/khrees2412/cvgen/pkg/models"
)

// Affordance is the control that starts an export. It is disabled with a
// progress label while an export runs and restored afterwards on every path.
type Affordance interface {
	Disable(label string)
	Restore()
}

// FallbackLoader provides the fallback capturer on demand.
type FallbackLoader func(ctx context.Context) (raster.Capturer, error)

// HistoryFunc records the outcome of an export attempt.
type HistoryFunc func(rec *models.ExportRecord) error

// Artifact describes a delivered PDF.
type Artifact struct {
	RunID    string
	FileName string
	Path     string
	Strategy string
	Pages    int
	Size     int
	Warnings []string
	Duration time.Duration
}

// Exporter runs exports. It holds no per-export state and may be reused.
type Exporter struct {
	capturer raster.Capturer
	fallback FallbackLoader
	history  HistoryFunc
	opts     Options
	log      *zap.Logger
	now      func() time.Time
	creator  string
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithFallbackLoader sets how the fallback capturer is obtained. Without one
// the primary capturer is reused for the fallback.
func WithFallbackLoader(l FallbackLoader) Option {
	return func(e *Exporter) { e.fallback = l }
}

// WithHistory records every attempt through fn.
func WithHistory(fn HistoryFunc) Option {
	return func(e *Exporter) { e.history = fn }
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Exporter) { e.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithCreator sets the PDF creator field.
func WithCreator(name string) Option {
	return func(e *Exporter) { e.creator = name }
}

func NewExporter(capturer raster.Capturer, opts Options, options ...Option) *Exporter {
	e := &Exporter{
		capturer: capturer,
		opts:     opts,
		log:      zap.NewNop(),
		now:      time.Now,
		creator:  "cvgen",
	}
	for _, o := range options {
		o(e)
	}
	if e.fallback == nil {
		e.fallback = func(context.Context) (raster.Capturer, error) { return e.capturer, nil }
	}
	return e
}

// Export turns doc into a PDF file in the output directory. Any failure is
// returned as *Error. aff may be nil.
func (e *Exporter) Export(ctx context.Context, doc models.Document, aff Affordance) (*Artifact, error) {
	r := newRun(e.now(), e.log)
	defer r.close()

	if aff != nil {
		aff.Disable("Generating PDF...")
		defer aff.Restore()
	}

	art, err := e.export(ctx, r, doc)
	e.record(r, art, err)
	if err != nil {
		return nil, err
	}
	return art, nil
}

func (e *Exporter) export(ctx context.Context, r *run, doc models.Document) (*Artifact, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, &Error{Kind: KindInvalidOptions, Err: err}
	}
	format, err := pagination.LookupFormat(e.opts.Format)
	if err != nil {
		return nil, &Error{Kind: KindInvalidOptions, Err: err}
	}
	engine, err := pagination.NewEngine(format, e.opts.MarginMM)
	if err != nil {
		return nil, &Error{Kind: KindInvalidOptions, Err: err}
	}

	prepared := document.PrepareForExport(doc, r.started)
	warnings := document.Readiness(prepared)
	r.warnings = warnings
	for _, w := range warnings {
		r.log.Warn("document not ready", zap.String("detail", w))
	}

	job := &job{
		run:    r,
		doc:    prepared,
		format: format,
		engine: engine,
		render: render.Options{
			PageWidthMM:  format.WidthMM,
			PageHeightMM: format.HeightMM,
			PaddingMM:    e.opts.PaddingMM,
			Format:       format.Name,
		},
	}

	r.log.Info("starting export",
		zap.String("strategy", e.opts.Strategy),
		zap.String("format", format.Name),
		zap.Float64("scale", e.opts.Scale),
		zap.Float64("margin_mm", e.opts.MarginMM),
	)

	strategy := e.opts.Strategy
	pdf, pages, err := e.runStrategy(ctx, job, strategy)
	if err != nil {
		first := classify(strategy, err)
		r.log.Warn("export strategy failed, trying fallback",
			zap.String("strategy", strategy),
			zap.String("kind", first.Kind.String()),
			zap.Error(err),
		)

		strategy = StrategyFallback
		pdf, pages, err = e.runStrategy(ctx, job, strategy)
		if err != nil {
			second := classify(strategy, err)
			r.log.Error("fallback export failed", zap.String("kind", second.Kind.String()), zap.Error(err))
			return nil, &Error{Kind: KindBothStrategiesFailed, Attempts: []*Error{first, second}}
		}
	}

	name := Filename(prepared.PersonalInfo.FullName, r.started)
	path, err := deliver(e.opts.OutputDir, name, pdf)
	if err != nil {
		return nil, &Error{Kind: KindDelivery, Strategy: strategy, Err: err}
	}

	art := &Artifact{
		RunID:    r.id.String(),
		FileName: name,
		Path:     path,
		Strategy: strategy,
		Pages:    pages,
		Size:     len(pdf),
		Warnings: warnings,
		Duration: e.now().Sub(r.started),
	}
	r.log.Info("export complete",
		zap.String("file", path),
		zap.String("strategy", strategy),
		zap.Int("pages", pages),
		zap.Int("bytes", len(pdf)),
	)
	return art, nil
}

func (e *Exporter) runStrategy(ctx context.Context, j *job, strategy string) ([]byte, int, error) {
	switch strategy {
	case StrategySections:
		return e.exportSections(ctx, j)
	case StrategyFallback:
		return e.exportFallback(ctx, j)
	default:
		return e.exportPrimary(ctx, j)
	}
}

// deliver writes the PDF under dir and returns its path.
func deliver(dir, name string, pdf []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// record stores the attempt in history. Failures to record are logged only.
func (e *Exporter) record(r *run, art *Artifact, err error) {
	if e.history == nil {
		return
	}
	strategy := e.opts.Strategy
	if strategy != StrategySections {
		strategy = StrategyPrimary
	}
	rec := &models.ExportRecord{
		RunID:      r.id.String(),
		Strategy:   strategy,
		Status:     models.ExportSucceeded,
		DurationMS: e.now().Sub(r.started).Milliseconds(),
		Warnings:   r.warnings,
	}
	if art != nil {
		rec.FileName = art.FileName
		rec.FilePath = art.Path
		rec.Strategy = art.Strategy
		rec.Pages = art.Pages
		rec.SizeBytes = art.Size
	}
	if err != nil {
		rec.Status = models.ExportFailed
		rec.ErrorMessage = err.Error()
		var ee *Error
		if errors.As(err, &ee) {
			rec.ErrorKind = ee.Kind.String()
		}
	}
	if herr := e.history(rec); herr != nil {
		r.log.Warn("failed to record export history", zap.Error(herr))
	}
}

// assemble writes layers to an in-memory PDF.
func (e *Exporter) assemble(j *job, layers ...pagination.Layer) ([]byte, int, error) {
	a := &pagination.Assembler{
		Format:  j.format,
		Quality: e.opts.Quality,
		Meta: pagination.Metadata{
			Title:   titleFor(j.doc),
			Author:  j.doc.PersonalInfo.FullName,
			Subject: "Curriculum Vitae",
			Creator: e.creator,
			Created: j.run.started,
		},
	}
	var buf bytes.Buffer
	pages, err := a.Assemble(&buf, layers...)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}

func titleFor(doc models.Document) string {
	if doc.PersonalInfo.FullName == "" {
		return "CV"
	}
	return doc.PersonalInfo.FullName + " - CV"
}
