package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBernoulliRejectsInvalidProbability(t *testing.T) {
	p := NewPolicy(1)
	for _, prob := range []float64{-0.1, 1.01} {
		_, err := p.Bernoulli(prob)
		require.ErrorIs(t, err, ErrInvalidProbability)
	}
}

func TestBernoulliExtremes(t *testing.T) {
	p := NewPolicy(7)
	for i := 0; i < 1000; i++ {
		never, err := p.Bernoulli(0)
		require.NoError(t, err)
		require.False(t, never)
		always, err := p.Bernoulli(1)
		require.NoError(t, err)
		require.True(t, always)
	}
}

func TestChooseUniform(t *testing.T) {
	p := NewPolicy(3)
	_, err := ChooseUniform[int](p, nil)
	require.ErrorIs(t, err, ErrEmptyCandidateSet)

	seen := map[string]int{}
	candidates := []string{"a", "b", "c"}
	for i := 0; i < 3000; i++ {
		c, err := ChooseUniform(p, candidates)
		require.NoError(t, err)
		seen[c]++
	}
	for _, c := range candidates {
		require.Greater(t, seen[c], 800, "candidate %s picked too rarely", c)
	}
}

func TestNormalClipsAtFloor(t *testing.T) {
	p := NewPolicy(11)
	for i := 0; i < 2000; i++ {
		require.GreaterOrEqual(t, p.Normal(0, 5), DefaultFloor)
	}
	p.SetFloor(0.25)
	require.Equal(t, 0.25, p.Floor())
	require.Equal(t, 0.25, p.Normal(-100, 0))
}

func TestUniformRange(t *testing.T) {
	p := NewPolicy(5)
	for i := 0; i < 2000; i++ {
		v := p.Uniform(2, 3)
		require.GreaterOrEqual(t, v, 2.0)
		require.Less(t, v, 3.0)
	}
}

func TestPolicyDeterministic(t *testing.T) {
	a, b := NewPolicy(42), NewPolicy(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
		require.Equal(t, a.Normal(5, 2), b.Normal(5, 2))
		require.Equal(t, a.IntN(10), b.IntN(10))
	}
}
