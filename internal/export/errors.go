package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/cvgen/internal/browser"
	"github.com/khrees2412/cvgen/internal/pagination"
	"github.com/khrees2412/cvgen/internal/raster"
	"github.com/khrees2412/cvgen/internal/render"
)

// Kind classifies an export failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindSurfaceNotFound
	KindEmptyCapture
	KindCaptureInternal
	KindResourceLimit
	KindColorFormat
	KindFallbackUnavailable
	KindInvalidOptions
	KindDelivery
	KindBothStrategiesFailed
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindSurfaceNotFound:      "surface_not_found",
	KindEmptyCapture:         "empty_capture",
	KindCaptureInternal:      "capture_internal",
	KindResourceLimit:        "resource_limit",
	KindColorFormat:          "color_format",
	KindFallbackUnavailable:  "fallback_unavailable",
	KindInvalidOptions:       "invalid_options",
	KindDelivery:             "delivery",
	KindBothStrategiesFailed: "both_strategies_failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrFallbackUnavailable is returned when the fallback renderer cannot be loaded in time.
var ErrFallbackUnavailable = errors.New("fallback renderer unavailable")

// Error is the single failure type returned by Export.
type Error struct {
	Kind     Kind
	Strategy string
	Err      error
	// Attempts holds the per-strategy failures when Kind is KindBothStrategiesFailed.
	Attempts []*Error
}

func (e *Error) Error() string {
	if e.Kind == KindBothStrategiesFailed {
		parts := make([]string, 0, len(e.Attempts))
		for _, a := range e.Attempts {
			parts = append(parts, a.Error())
		}
		return "all export strategies failed: " + strings.Join(parts, "; ")
	}
	if e.Strategy != "" {
		return fmt.Sprintf("%s export (%s): %v", e.Strategy, e.Kind, e.Err)
	}
	return fmt.Sprintf("export (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts)+1)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	for _, a := range e.Attempts {
		errs = append(errs, a)
	}
	return errs
}

// Cause is the kind that decides the user message: the last attempt's kind
// for a chain failure, the error's own kind otherwise.
func (e *Error) Cause() Kind {
	if e.Kind == KindBothStrategiesFailed && len(e.Attempts) > 0 {
		return e.Attempts[len(e.Attempts)-1].Cause()
	}
	return e.Kind
}

// UserMessage is the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	const prefix = "Failed to generate PDF. "
	switch e.Cause() {
	case KindSurfaceNotFound, KindEmptyCapture, KindCaptureInternal:
		return prefix + "Could not capture the CV content. Please check that the CV has content and try again."
	case KindResourceLimit:
		return prefix + "The CV is too large to process. Try reducing the content or lowering the export scale."
	case KindColorFormat:
		return prefix + "The CV uses colors that could not be embedded in the PDF. Please try again."
	case KindFallbackUnavailable:
		return prefix + "The backup renderer could not be started. Check that Chrome is installed and try again."
	case KindInvalidOptions:
		return prefix + fmt.Sprintf("Invalid export settings: %v", e.Err)
	case KindDelivery:
		return prefix + fmt.Sprintf("The file could not be saved: %v", e.Err)
	}
	last := e
	if len(e.Attempts) > 0 {
		last = e.Attempts[len(e.Attempts)-1]
	}
	if last.Err != nil {
		return prefix + "Error: " + last.Err.Error()
	}
	return prefix + "An unknown error occurred. Please try again."
}

// classify tags err with the kind its structure implies.
func classify(strategy string, err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}
	kind := KindUnknown
	switch {
	case errors.Is(err, ErrFallbackUnavailable):
		kind = KindFallbackUnavailable
	case errors.Is(err, raster.ErrSurfaceNotFound), errors.Is(err, render.ErrSurfaceNotFound):
		kind = KindSurfaceNotFound
	case errors.Is(err, raster.ErrEmptyCapture), errors.Is(err, pagination.ErrEmptySource):
		kind = KindEmptyCapture
	case errors.Is(err, raster.ErrCaptureTooLarge):
		kind = KindResourceLimit
	case errors.Is(err, raster.ErrColorFormat), errors.Is(err, pagination.ErrImageEncoding):
		kind = KindColorFormat
	case errors.Is(err, browser.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		kind = KindCaptureInternal
	}
	return &Error{Kind: kind, Strategy: strategy, Err: err}
}
