package raster

import (
	"context"
	"time"
)

// Probe reports the current count for each selector.
type Probe func(ctx context.Context) (map[string]int, error)

// Converge polls probe until every expected count is reached or timeout
// elapses. It reports whether the counts converged; a timeout is not an
// error, the caller proceeds with whatever has rendered.
func Converge(ctx context.Context, probe Probe, expect map[string]int, timeout, interval time.Duration) (bool, error) {
	if len(expect) == 0 {
		return true, nil
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		counts, err := probe(ctx)
		if err != nil {
			return false, err
		}
		if satisfied(counts, expect) {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-tick.C:
		}
	}
}

func satisfied(counts, expect map[string]int) bool {
	for sel, want := range expect {
		if counts[sel] < want {
			return false
		}
	}
	return true
}
