package charts

import (
	"os"
	"path/filepath"
	"testing"

	"cloud-ca/internal/stats"

	"github.com/stretchr/testify/require"
)

func massSeries() *stats.Series {
	var s stats.Series
	s.Append(stats.Sample{Sizes: []float64{1, 2, 5}, Population: 3, Mean: 8.0 / 3, TotalMass: 8})
	s.Append(stats.Sample{Sizes: []float64{3, 5}, Population: 2, Mean: 4, TotalMass: 8})
	return &s
}

func TestMassReportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(massSeries(), false, dir, "coalescence")
	require.NoError(t, err)
	require.Len(t, paths, 4)
	require.Equal(t, filepath.Join(dir, "coalescence_final_sizes.png"), paths[0])
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
}

func TestMassReportSkipsEmptyHistogram(t *testing.T) {
	var s stats.Series
	s.Append(stats.Sample{})
	paths, err := MassReport(&s, t.TempDir(), "")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	require.Equal(t, "mean_size.png", filepath.Base(paths[0]))
}

func TestFlagReportWritesFiles(t *testing.T) {
	var s stats.Series
	s.Append(stats.Sample{Humidity: 20, Active: 1})
	s.Append(stats.Sample{Humidity: 25, Active: 4, Cloud: 1})
	s.Append(stats.Sample{Humidity: 31, Active: 9, Cloud: 5})

	dir := filepath.Join(t.TempDir(), "nested")
	paths, err := Write(&s, true, dir, "clouds")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		_, err := os.Stat(p)
		require.NoError(t, err)
	}
}
