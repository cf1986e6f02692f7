package export

import (
	"fmt"
	"image/color"
	"time"
)

// Strategy names.
const (
	StrategyPrimary  = "primary"
	StrategySections = "sections"
	StrategyFallback = "fallback"
)

// Options tunes an export run.
type Options struct {
	Scale     float64 // device pixels per CSS pixel
	Quality   float64 // JPEG quality, 0..1
	MarginMM  float64 // uniform page margin
	PaddingMM float64 // inner padding of the captured surface
	Format    string  // page format name
	Strategy  string  // primary or sections; the fallback always follows a failure
	OutputDir string

	// SectionMarginMM and SectionSpacingMM lay out the sections strategy.
	SectionMarginMM  float64
	SectionSpacingMM float64

	Background color.RGBA

	ConvergeTimeout     time.Duration
	CaptureTimeout      time.Duration
	FallbackLoadTimeout time.Duration
}

// DefaultOptions returns the standard A4 export settings.
func DefaultOptions() Options {
	return Options{
		Scale:               2.0,
		Quality:             0.95,
		MarginMM:            0,
		PaddingMM:           2,
		Format:              "a4",
		Strategy:            StrategyPrimary,
		OutputDir:           ".",
		SectionMarginMM:     10,
		SectionSpacingMM:    5,
		Background:          color.RGBA{R: 255, G: 255, B: 255, A: 255},
		ConvergeTimeout:     2 * time.Second,
		CaptureTimeout:      60 * time.Second,
		FallbackLoadTimeout: 30 * time.Second,
	}
}

// Validate rejects settings no strategy can honour.
func (o Options) Validate() error {
	if o.Scale <= 0 || o.Scale > 4 {
		return fmt.Errorf("scale must be in (0, 4], got %v", o.Scale)
	}
	if o.Quality <= 0 || o.Quality > 1 {
		return fmt.Errorf("quality must be in (0, 1], got %v", o.Quality)
	}
	if o.PaddingMM < 0 {
		return fmt.Errorf("padding must not be negative, got %v", o.PaddingMM)
	}
	if o.Strategy != StrategyPrimary && o.Strategy != StrategySections {
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategyPrimary, StrategySections, o.Strategy)
	}
	if o.SectionSpacingMM < 0 {
		return fmt.Errorf("section spacing must not be negative, got %v", o.SectionSpacingMM)
	}
	return nil
}
