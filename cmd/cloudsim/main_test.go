package main

import (
	"os"
	"path/filepath"
	"testing"

	"cloud-ca/internal/app"

	"github.com/stretchr/testify/require"
)

func TestRunFinalisesVideoWhenPlotsFail(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "plots")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	video := filepath.Join(dir, "run.avi")

	cfg := app.NewConfig()
	cfg.Sim = "coalescence"
	cfg.Steps = 3
	cfg.Plots = blocker
	err := run(cfg, options{video: video})
	require.ErrorContains(t, err, "write plots")

	data, err := os.ReadFile(video)
	require.NoError(t, err)
	require.Contains(t, string(data), "idx1")
}
