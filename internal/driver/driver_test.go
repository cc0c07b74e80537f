package driver

import (
	"context"
	"errors"
	"testing"

	"cloud-ca/internal/core"
	"cloud-ca/internal/sims/clouds"
	"cloud-ca/internal/sims/droplets"
	"cloud-ca/internal/stats"

	"github.com/stretchr/testify/require"
)

func TestRunRecordsOneSamplePerStep(t *testing.T) {
	sim, err := droplets.New(10, 10)
	require.NoError(t, err)

	var seen []int
	series, err := Run(context.Background(), sim, 25, func(step int, _ core.Sim, s stats.Sample) error {
		seen = append(seen, step)
		require.Equal(t, step+1, s.Step)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 25, series.Len())
	require.Len(t, seen, 25)
	require.Equal(t, 25, sim.Steps())

	last, ok := series.Last()
	require.True(t, ok)
	require.Equal(t, sim.Sample().Sizes, last.Sizes)
}

func TestRunStopsOnObserverRequest(t *testing.T) {
	sim, err := clouds.New(20, 20)
	require.NoError(t, err)
	series, err := Run(context.Background(), sim, 0, func(step int, _ core.Sim, _ stats.Sample) error {
		if step == 4 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 5, series.Len())
}

func TestRunPropagatesObserverError(t *testing.T) {
	sim, err := clouds.New(8, 8)
	require.NoError(t, err)
	boom := errors.New("boom")
	series, err := Run(context.Background(), sim, 10, func(int, core.Sim, stats.Sample) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, series.Len())
}

func TestRunHonoursCancelledContext(t *testing.T) {
	sim, err := droplets.New(5, 5)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	series, err := Runner{MaxSteps: 10, TPS: 1000}.Run(ctx, sim)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, series.Len())
}

func TestEvery(t *testing.T) {
	var calls []int
	obs := Every(3, func(step int, _ core.Sim, _ stats.Sample) error {
		calls = append(calls, step)
		return nil
	})
	for i := 0; i < 7; i++ {
		require.NoError(t, obs(i, nil, stats.Sample{}))
	}
	require.Equal(t, []int{0, 3, 6}, calls)
}
