package render

import (
	"image/color"
	"sync"

	"cloud-ca/internal/core"

	"github.com/nsf/termbox-go"
)

// Terminal draws sims as coloured blocks in a 256-colour terminal. Each cell
// takes two columns so the grid keeps a roughly square aspect.
type Terminal struct {
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

// OpenTerminal switches the terminal into full-screen mode and starts
// listening for quit keys (Esc, q, Ctrl-C).
func OpenTerminal() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)
	t := &Terminal{quit: make(chan struct{}), done: make(chan struct{})}
	go t.poll()
	return t, nil
}

func (t *Terminal) poll() {
	defer close(t.done)
	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
				t.quitOnce.Do(func() { close(t.quit) })
			}
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

// Quit is closed once the user presses a quit key.
func (t *Terminal) Quit() <-chan struct{} { return t.quit }

// Draw paints the sim's current cells, clipped to the terminal size.
func (t *Terminal) Draw(sim core.Sim) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	size := sim.Size()
	cells := sim.Cells()
	palette := sim.Palette()
	tw, th := termbox.Size()
	for y := 0; y < size.H && y < th; y++ {
		for x := 0; x < size.W && 2*x+1 < tw; x++ {
			bg := termbox.ColorDefault
			if idx := int(cells[y*size.W+x]); idx < len(palette) {
				bg = Xterm256(palette[idx])
			}
			termbox.SetCell(2*x, y, ' ', termbox.ColorDefault, bg)
			termbox.SetCell(2*x+1, y, ' ', termbox.ColorDefault, bg)
		}
	}
	return termbox.Flush()
}

// Close restores the terminal.
func (t *Terminal) Close() {
	termbox.Interrupt()
	<-t.done
	termbox.Close()
}

// Xterm256 maps c onto the nearest entry of the xterm 6×6×6 colour cube, or
// the grey ramp when c is achromatic, as a termbox Output256 attribute.
func Xterm256(c color.RGBA) termbox.Attribute {
	var idx int
	if c.R == c.G && c.G == c.B {
		switch {
		case c.R < 8:
			idx = 16
		case c.R > 238:
			idx = 231
		default:
			idx = 232 + (int(c.R)-8)/10
		}
	} else {
		idx = 16 + 36*level(c.R) + 6*level(c.G) + level(c.B)
	}
	return termbox.Attribute(idx + 1)
}

func level(v uint8) int {
	return (int(v)*5 + 127) / 255
}
