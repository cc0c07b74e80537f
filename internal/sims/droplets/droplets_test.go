package droplets

import (
	"testing"

	"cloud-ca/internal/core"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func newWorld(t *testing.T, preset string, overrides map[string]string) *World {
	t.Helper()
	cfg, err := FromMap(preset, overrides)
	require.NoError(t, err)
	w, err := NewWithConfig(cfg)
	require.NoError(t, err)
	return w
}

func totalMass(w *World) float64 { return floats.Sum(w.Lattice().Cells()) }

func TestMovementConservesMass(t *testing.T) {
	w := newWorld(t, PresetCoalescence, nil)
	want := totalMass(w)
	require.Greater(t, want, 0.0)
	for i := 0; i < 100; i++ {
		w.Step()
		require.InDelta(t, want, totalMass(w), 1e-9, "step %d", i)
	}
}

func TestRainMovementConservesMassAboveGround(t *testing.T) {
	for _, preset := range []string{PresetRain, PresetRainfall} {
		t.Run(preset, func(t *testing.T) {
			w := newWorld(t, preset, map[string]string{"w": "12", "h": "12", "order": "move"})
			l := w.Lattice()
			for i := 0; i < 30; i++ {
				for j := 0; j < l.Cols(); j++ {
					require.NoError(t, w.Lattice().Set(l.Rows()-1, j, 0))
				}
				want := totalMass(w)
				w.Step()
				require.InDelta(t, want, totalMass(w), 1e-9, "step %d", i)
			}
		})
	}
}

func TestCoalescenceNeverGrowsPopulation(t *testing.T) {
	w := newWorld(t, PresetCoalescence, nil)
	prev := w.Sample().Population
	for i := 0; i < 50; i++ {
		w.Step()
		pop := w.Sample().Population
		require.LessOrEqual(t, pop, prev)
		prev = pop
	}
}

func TestDownOnlyDropletFallsOffTheGrid(t *testing.T) {
	w := newWorld(t, PresetRain, map[string]string{
		"w": "3", "h": "3",
		"initial_occupancy": "0",
		"small_pattern":     "down",
		"medium_pattern":    "down",
		"large_pattern":     "down",
		"order":             "move",
	})
	require.NoError(t, w.Lattice().Set(0, 0, 25))

	w.Step()
	v, err := w.Lattice().Get(1, 0)
	require.NoError(t, err)
	require.Equal(t, 25.0, v)

	w.Step()
	v, _ = w.Lattice().Get(2, 0)
	require.Equal(t, 25.0, v)

	w.Step()
	require.Zero(t, totalMass(w))
	require.Zero(t, w.Sample().Population)
}

func TestStayFallbackKeepsBlockedDroplet(t *testing.T) {
	w := newWorld(t, PresetCoalescence, map[string]string{
		"w": "1", "h": "1", "initial_occupancy": "0",
	})
	require.NoError(t, w.Lattice().Set(0, 0, 4))
	w.Step()
	v, _ := w.Lattice().Get(0, 0)
	require.Equal(t, 4.0, v)
}

func TestSameSeedSameTrajectory(t *testing.T) {
	for _, preset := range Presets() {
		t.Run(preset, func(t *testing.T) {
			a := newWorld(t, preset, map[string]string{"seed": "7"})
			b := newWorld(t, preset, map[string]string{"seed": "7"})
			for i := 0; i < 30; i++ {
				a.Step()
				b.Step()
			}
			require.Equal(t, a.Lattice().Cells(), b.Lattice().Cells())
		})
	}
}

func TestResetReplaysTrajectory(t *testing.T) {
	w := newWorld(t, PresetSteady, nil)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	first := append([]float64(nil), w.Lattice().Cells()...)

	w.Reset(0)
	require.Zero(t, w.Steps())
	for i := 0; i < 10; i++ {
		w.Step()
	}
	require.Equal(t, first, w.Lattice().Cells())
}

func TestRainfallStaysNonNegative(t *testing.T) {
	w := newWorld(t, PresetRainfall, nil)
	for i := 0; i < 50; i++ {
		w.Step()
		for _, v := range w.Lattice().Cells() {
			require.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestInitialSizesRespectFloor(t *testing.T) {
	w := newWorld(t, PresetCoalescence, map[string]string{
		"initial_occupancy":   "1",
		"initial_size_mean":   "0.5",
		"initial_size_stddev": "3",
	})
	for _, v := range w.Lattice().Cells() {
		require.GreaterOrEqual(t, v, core.DefaultFloor)
	}
}

func TestStepDoesNotMutatePreviousGeneration(t *testing.T) {
	w := newWorld(t, PresetSplit, nil)
	before := w.Lattice()
	snapshot := append([]float64(nil), before.Cells()...)
	w.Step()
	require.Equal(t, snapshot, before.Cells())
	require.NotSame(t, before, w.Lattice())
}

func TestSampleAndLabels(t *testing.T) {
	w := newWorld(t, PresetCoalescence, map[string]string{
		"w": "2", "h": "1", "initial_occupancy": "0",
	})
	require.NoError(t, w.Lattice().Set(0, 1, 3.26))
	s := w.Sample()
	require.Equal(t, 1, s.Population)
	require.Equal(t, []float64{3.26}, s.Sizes)
	require.Equal(t, "", w.CellLabel(0, 0))
	require.Equal(t, "3.3", w.CellLabel(1, 0))
	require.Equal(t, "", w.CellLabel(5, 5))
}

func TestGroundRowHidesBottomDroplets(t *testing.T) {
	w := newWorld(t, PresetRainfall, map[string]string{
		"w": "2", "h": "2", "initial_occupancy": "0", "p_add": "0",
	})
	require.NoError(t, w.Lattice().Set(1, 0, 4))
	require.NoError(t, w.Lattice().Set(0, 1, 2))
	w.rebuildDisplay()

	require.Equal(t, uint8(groundIndex), w.Cells()[w.Lattice().Index(1, 0)])
	require.Equal(t, uint8(groundIndex), w.Cells()[w.Lattice().Index(1, 1)])
	require.NotEqual(t, uint8(groundIndex), w.Cells()[w.Lattice().Index(0, 1)])
	require.Equal(t, "", w.CellLabel(0, 1))
	require.Equal(t, "2.0", w.CellLabel(1, 0))
	require.Equal(t, 2, w.Sample().Population)
}

func TestRegisteredPresets(t *testing.T) {
	for _, preset := range Presets() {
		sim, err := core.NewSim(preset, map[string]string{"w": "8", "h": "6"})
		require.NoError(t, err)
		require.Equal(t, preset, sim.Name())
		require.Equal(t, core.Size{W: 8, H: 6}, sim.Size())
		require.Len(t, sim.Cells(), 48)
	}
	_, err := core.NewSim(PresetRain, map[string]string{"p_add": "2"})
	require.ErrorIs(t, err, core.ErrInvalidProbability)
}
