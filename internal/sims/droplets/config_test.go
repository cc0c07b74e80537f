package droplets

import (
	"testing"

	"cloud-ca/internal/core"

	"github.com/stretchr/testify/require"
)

func TestPresetsValidate(t *testing.T) {
	for _, name := range Presets() {
		c, err := Preset(name)
		require.NoError(t, err)
		require.NoError(t, c.Validate(), name)
	}
	_, err := Preset("drizzle")
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestFromMapOverrides(t *testing.T) {
	c, err := FromMap(PresetSteady, map[string]string{
		"w":             "12",
		"seed":          "99",
		"p_add":         "0.2",
		"fallback":      "vanish",
		"birth_mode":    "top",
		"large_pattern": "down",
		"order":         "birth, move ,remove",
	})
	require.NoError(t, err)
	require.Equal(t, 12, c.Width)
	require.Equal(t, int64(99), c.Seed)
	require.Equal(t, 0.2, c.Params.AddChance)
	require.Equal(t, FallbackVanish, c.Params.Fallback)
	require.Equal(t, BirthTopRow, c.Params.BirthMode)
	require.Equal(t, core.DownOnly, c.Params.LargePattern)
	require.Equal(t, []string{RuleBirth, RuleMove, RuleRemove}, c.Params.Order)
}

func TestFromMapRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		cfg  map[string]string
		want error
	}{
		{"probability", map[string]string{"p_split": "1.5"}, core.ErrInvalidProbability},
		{"nan", map[string]string{"p_remove": "NaN"}, core.ErrInvalidProbability},
		{"malformed", map[string]string{"w": "wide"}, core.ErrInvalidConfig},
		{"dimensions", map[string]string{"h": "0"}, core.ErrInvalidConfig},
		{"pattern", map[string]string{"small_pattern": "hex"}, core.ErrUnknownPattern},
		{"fallback", map[string]string{"fallback": "bounce"}, core.ErrInvalidConfig},
		{"order", map[string]string{"order": "move,evaporate"}, core.ErrInvalidConfig},
		{"floor", map[string]string{"size_floor": "0"}, core.ErrInvalidConfig},
		{"thresholds", map[string]string{"medium_threshold": "30"}, core.ErrInvalidConfig},
		{"unknown key", map[string]string{"p_ad": "0.9"}, core.ErrInvalidConfig},
		{"cloud key", map[string]string{"p_act": "0.1"}, core.ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromMap(PresetCoalescence, tc.cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMistypedKeysAreNamed(t *testing.T) {
	_, err := core.NewSim(PresetSteady, map[string]string{"p_remov": "1", "p_ad": "0.9"})
	require.ErrorIs(t, err, core.ErrInvalidConfig)
	require.ErrorContains(t, err, `"p_remov"`)
	require.ErrorContains(t, err, `"p_ad"`)
}

func TestSetFloatParameterClamps(t *testing.T) {
	w, err := New(4, 4)
	require.NoError(t, err)
	require.True(t, w.SetFloatParameter("p_split", 1.7))
	require.Equal(t, 1.0, w.Config().Params.SplitChance)
	require.True(t, w.SetFloatParameter("p_add", -1))
	require.Zero(t, w.Config().Params.AddChance)
	require.False(t, w.SetFloatParameter("size_floor", 0.5))
	require.Len(t, w.ParameterControls(), 3)
	require.NotEmpty(t, w.Parameters().Groups)
}

func TestColorForGradient(t *testing.T) {
	require.Equal(t, uint8(173), ColorFor(0, 20).R)
	end := ColorFor(40, 20)
	require.Equal(t, uint8(0), end.R)
	require.Equal(t, uint8(255), end.B)
	require.Equal(t, uint8(0), encodeSize(0, 20))
	require.Equal(t, uint8(254), encodeSize(20, 20))
	require.Len(t, dropletPalette, 256)
	require.Equal(t, ground, dropletPalette[groundIndex])
}

func TestDownpourPreset(t *testing.T) {
	rainfall, err := Preset(PresetRainfall)
	require.NoError(t, err)
	downpour, err := Preset(PresetDownpour)
	require.NoError(t, err)
	require.Equal(t, 15.0, downpour.Params.MediumLargeThreshold)
	downpour.Params.MediumLargeThreshold = rainfall.Params.MediumLargeThreshold
	downpour.Preset = rainfall.Preset
	require.Equal(t, rainfall, downpour)
}
