package raster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvergeWaitsForCounts(t *testing.T) {
	calls := 0
	probe := func(context.Context) (map[string]int, error) {
		calls++
		return map[string]int{".skill-item": calls, ".project-item": 2}, nil
	}

	ok, err := Converge(context.Background(), probe,
		map[string]int{".skill-item": 3, ".project-item": 2}, time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
}

func TestConvergeTimesOutWithoutError(t *testing.T) {
	probe := func(context.Context) (map[string]int, error) {
		return map[string]int{".skill-item": 1}, nil
	}

	ok, err := Converge(context.Background(), probe,
		map[string]int{".skill-item": 5}, 20*time.Millisecond, 5*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConvergeNoExpectations(t *testing.T) {
	probe := func(context.Context) (map[string]int, error) {
		t.Fatal("probe should not run")
		return nil, nil
	}
	ok, err := Converge(context.Background(), probe, nil, time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConvergeProbeError(t *testing.T) {
	boom := errors.New("boom")
	probe := func(context.Context) (map[string]int, error) { return nil, boom }
	_, err := Converge(context.Background(), probe, map[string]int{"a": 1}, time.Second, time.Millisecond)
	assert.ErrorIs(t, err, boom)
}

func TestConvergeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	probe := func(context.Context) (map[string]int, error) { return map[string]int{}, nil }
	_, err := Converge(ctx, probe, map[string]int{"a": 1}, time.Second, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}
