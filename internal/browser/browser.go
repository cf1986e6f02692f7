// Package browser starts the headless Chrome instances used for capture and printing.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when no browser could be started.
var ErrUnavailable = errors.New("headless browser unavailable")

// Options configures the browser process.
type Options struct {
	ExecPath       string // empty uses the chromedp lookup
	WindowWidth    int
	WindowHeight   int
	WSURLReadLimit time.Duration
}

// noisy chromedp messages that are not actionable
var suppressed = []string{
	"could not unmarshal event",
	"unknown PrivateNetworkRequestPolicy",
	"unknown ClientNavigationReason",
}

// NewContext creates a browser tab context. The returned cancel closes the tab
// and then the browser process.
func NewContext(parent context.Context, opts Options, log *zap.Logger) (context.Context, context.CancelFunc) {
	if log == nil {
		log = zap.NewNop()
	}
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight))
	}
	if opts.WSURLReadLimit > 0 {
		allocOpts = append(allocOpts, chromedp.WSURLReadTimeout(opts.WSURLReadLimit))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel2 := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		for _, s := range suppressed {
			if strings.Contains(msg, s) {
				return
			}
		}
		log.Debug("chromedp", zap.String("msg", msg))
	}))

	return ctx, func() {
		cancel2()
		cancel()
	}
}

// Start launches the browser behind ctx without running any action, so a
// missing or broken Chrome surfaces as ErrUnavailable before real work starts.
func Start(ctx context.Context) error {
	if err := chromedp.Run(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
