package ui

import (
	"testing"

	"cloud-ca/internal/stats"

	"github.com/stretchr/testify/require"
)

func TestStatLines(t *testing.T) {
	require.Nil(t, statLines(nil))

	var s stats.Series
	require.Equal(t, []string{"step -"}, statLines(&s))

	s.Append(stats.Sample{Step: 1, Population: 3, Mean: 2.5, TotalMass: 7.5})
	require.Equal(t, []string{"step 1", "droplets 3", "mean     2.50", "mass     7.5"}, statLines(&s))

	s.Append(stats.Sample{Step: 2, Humidity: 4, Active: 1})
	require.Equal(t, []string{"step 2", "humidity 4", "active   1", "cloud    0"}, statLines(&s))
}
