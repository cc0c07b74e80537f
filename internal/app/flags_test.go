package app

import (
	"flag"
	"testing"

	"cloud-ca/internal/core"
	_ "cloud-ca/internal/sims/clouds"
	_ "cloud-ca/internal/sims/droplets"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse(args))
	return cfg
}

func TestFlagsMergeIntoSimConfig(t *testing.T) {
	cfg := parse(t, "-sim", "rain", "-seed", "9", "-steps", "50", "-set", "p_add=0.1", "-set", "seed=4", "-set", "w = 12")
	m, err := cfg.SimConfig()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"p_add": "0.1", "seed": "9", "steps": "50", "w": "12"}, m)

	sim, _, err := cfg.NewSim()
	require.NoError(t, err)
	require.Equal(t, "rain", sim.Name())
	require.Equal(t, 12, sim.Size().W)
	require.Equal(t, 50, core.SettingsOf(sim).MaxSteps)
}

func TestDefaultsDeferToSim(t *testing.T) {
	cfg := parse(t, "-sim", "clouds")
	sim, m, err := cfg.NewSim()
	require.NoError(t, err)
	require.Empty(t, m)
	s := core.SettingsOf(sim)
	require.Equal(t, core.RunSettings{Scale: 10, FPS: 5, MaxSteps: 200}, s)
}

func TestSetRejectsMalformedOverride(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	cfg.Bind(fs)
	require.Error(t, fs.Parse([]string{"-set", "novalue"}))

	_, err := KVList{"=3"}.Map()
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestUnknownSim(t *testing.T) {
	cfg := parse(t, "-sim", "tornado")
	_, _, err := cfg.NewSim()
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
