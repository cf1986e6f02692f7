package export

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunReleasesInReverseOrder(t *testing.T) {
	r := newRun(time.Now(), zap.NewNop())
	var order []string
	boom := errors.New("boom")

	r.acquire(func() error { order = append(order, "surface"); return nil })
	r.acquire(func() error { order = append(order, "browser"); return boom })
	r.acquire(func() error { order = append(order, "temp"); return nil })

	err := r.close()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"temp", "browser", "surface"}, order)

	// resources acquired after close are released at once
	r.acquire(func() error { order = append(order, "late"); return nil })
	assert.Equal(t, "late", order[len(order)-1])
	assert.NoError(t, r.close())
}
