package export

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// run is the context of one export attempt. Resources acquired while it is
// open are released in reverse order by close, whatever the outcome.
type run struct {
	id       uuid.UUID
	started  time.Time
	log      *zap.Logger
	warnings []string // readiness findings for the exported document

	mu       sync.Mutex
	releases []func() error
	closed   bool
}

func newRun(now time.Time, log *zap.Logger) *run {
	id := uuid.New()
	return &run{
		id:      id,
		started: now,
		log:     log.With(zap.String("run_id", id.String())),
	}
}

// acquire registers release to run when the attempt closes. After close it
// runs release immediately.
func (r *run) acquire(release func() error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		if err := release(); err != nil {
			r.log.Warn("late release failed", zap.Error(err))
		}
		return
	}
	r.releases = append(r.releases, release)
	r.mu.Unlock()
}

// close runs every release, last acquired first, and joins their errors.
func (r *run) close() error {
	r.mu.Lock()
	releases := r.releases
	r.releases = nil
	r.closed = true
	r.mu.Unlock()

	var errs []error
	for i := len(releases) - 1; i >= 0; i-- {
		if err := releases[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		r.log.Warn("failed to release export resources", zap.Error(err))
		return err
	}
	return nil
}
