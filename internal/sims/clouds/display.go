package clouds

import "image/color"

const (
	displayBackground uint8 = iota
	displayHumidity
	displayActive
	displayCloud
)

var cloudPalette = []color.RGBA{
	displayBackground: {R: 30, G: 30, B: 30, A: 255},
	displayHumidity:   {R: 0, G: 100, B: 255, A: 255},
	displayActive:     {R: 255, G: 165, B: 0, A: 255},
	displayCloud:      {R: 200, G: 200, B: 200, A: 255},
}

// Palette exposes the flag colours indexed by display value.
func (w *World) Palette() []color.RGBA { return cloudPalette }

// ColorFor returns the colour of the highest-priority flag set on f.
func ColorFor(f Flags) color.RGBA { return cloudPalette[encode(f)] }

func encode(f Flags) uint8 {
	switch {
	case f.Cloud:
		return displayCloud
	case f.Active:
		return displayActive
	case f.Humidity:
		return displayHumidity
	}
	return displayBackground
}

func (w *World) rebuildDisplay() {
	for i, f := range w.cur.Cells() {
		w.display[i] = encode(f)
	}
}
