package sweep

import (
	"context"
	"testing"

	"cloud-ca/internal/core"
	_ "cloud-ca/internal/sims/clouds"
	_ "cloud-ca/internal/sims/droplets"

	"github.com/stretchr/testify/require"
)

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("p_add= 0.01, 0.05 ,")
	require.NoError(t, err)
	require.Equal(t, Axis{Key: "p_add", Values: []string{"0.01", "0.05"}}, a)

	_, err = ParseAxis("p_add")
	require.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = ParseAxis("p_add=,")
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestCombinations(t *testing.T) {
	require.Equal(t, []map[string]string{{}}, Combinations(nil))

	combos := Combinations([]Axis{
		{Key: "a", Values: []string{"1", "2"}},
		{Key: "b", Values: []string{"x", "y", "z"}},
	})
	require.Len(t, combos, 6)
	require.Equal(t, map[string]string{"a": "1", "b": "x"}, combos[0])
	require.Equal(t, map[string]string{"a": "2", "b": "z"}, combos[5])
}

func TestKeyIsSorted(t *testing.T) {
	require.Equal(t, "a=1 b=2", Key(map[string]string{"b": "2", "a": "1"}))
}

func TestRunAndSummarise(t *testing.T) {
	plan := Plan{
		Sim:     "steady",
		Base:    map[string]string{"w": "10", "h": "10"},
		Combos:  Combinations([]Axis{{Key: "p_remove", Values: []string{"0", "1"}}}),
		Seeds:   []int64{1, 2, 3},
		Steps:   20,
		Workers: 4,
	}
	results := Run(context.Background(), plan)
	require.Len(t, results, 6)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.Equal(t, 20, r.Steps)
		require.Equal(t, 20, r.Final.Step)
	}

	summaries := Summarise(results)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.Equal(t, 3, s.Runs)
		require.Zero(t, s.Failed)
	}
	require.GreaterOrEqual(t, summaries[0].MeanSize, summaries[1].MeanSize)
}

func TestRunDeterministicPerSeed(t *testing.T) {
	plan := Plan{Sim: "clouds", Base: map[string]string{"w": "20", "h": "20"}, Combos: Combinations(nil), Seeds: []int64{7}, Steps: 15, Workers: 1}
	a := Run(context.Background(), plan)
	b := Run(context.Background(), plan)
	require.Equal(t, a[0].Final, b[0].Final)
}

func TestValidateRejectsUnknownAxis(t *testing.T) {
	plan := Plan{
		Sim:    "steady",
		Base:   map[string]string{"w": "6", "h": "6"},
		Combos: Combinations([]Axis{{Key: "p_ad", Values: []string{"0.1", "0.2"}}}),
	}
	require.ErrorIs(t, plan.Validate(), core.ErrInvalidConfig)

	plan.Combos = Combinations([]Axis{{Key: "p_add", Values: []string{"0.1", "0.2"}}})
	require.NoError(t, plan.Validate())
}

func TestRunReportsConfigErrors(t *testing.T) {
	plan := Plan{
		Sim:     "rain",
		Combos:  Combinations([]Axis{{Key: "p_add", Values: []string{"3"}}}),
		Seeds:   []int64{1},
		Steps:   5,
		Workers: 2,
	}
	results := Run(context.Background(), plan)
	require.Len(t, results, 1)
	require.ErrorIs(t, results[0].Err, core.ErrInvalidProbability)

	summaries := Summarise(results)
	require.Equal(t, 1, summaries[0].Failed)
	require.Zero(t, summaries[0].Runs)
}
