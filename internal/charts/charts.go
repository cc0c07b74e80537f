// Package charts renders offline PNG charts of a recorded run with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"cloud-ca/internal/stats"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// HistogramBins is the number of bins used for the final size histogram.
const HistogramBins = 30

var (
	cloudColor    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	humidityColor = color.RGBA{B: 255, A: 255}
	activeColor   = color.RGBA{R: 255, G: 165, A: 255}
	scatterColor  = color.RGBA{R: 128, B: 128, A: 180}
)

// Write renders the charts matching the series kind into dir and returns the
// written paths. Flag runs get flag charts; everything else gets mass charts.
func Write(series *stats.Series, flags bool, dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}
	if flags {
		return FlagReport(series, dir, prefix)
	}
	return MassReport(series, dir, prefix)
}

// MassReport writes the final size histogram and the mean size and population
// time series. The histogram is skipped when the last step has no droplets.
func MassReport(series *stats.Series, dir, prefix string) ([]string, error) {
	var written []string
	if sizes := series.FinalSizes(); len(sizes) > 0 {
		p := newPlot("Final droplet size distribution", "Size", "Count")
		h, err := plotter.NewHist(plotter.Values(sizes), HistogramBins)
		if err != nil {
			return written, err
		}
		h.FillColor = humidityColor
		p.Add(h)
		path, err := save(p, dir, prefix, "final_sizes")
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	steps := series.Steps()
	lines := []struct {
		name, title, ylabel string
		ys                  []float64
	}{
		{"mean_size", "Mean droplet size", "Mean size", series.Means()},
		{"population", "Droplet population", "Occupied cells", series.Populations()},
		{"total_mass", "Total mass", "Mass", series.TotalMasses()},
	}
	for _, l := range lines {
		p := newPlot(l.title, "Step", l.ylabel)
		if err := plotutil.AddLinePoints(p, l.ylabel, xys(steps, l.ys)); err != nil {
			return written, err
		}
		path, err := save(p, dir, prefix, l.name)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// FlagReport writes the three flag population lines, a bar chart of the final
// counts and a humidity-versus-active scatter.
func FlagReport(series *stats.Series, dir, prefix string) ([]string, error) {
	var written []string
	steps := series.Steps()
	humidity, active, cloud := series.FlagCounts()

	p := newPlot("Cell state evolution", "Step", "Cells")
	for _, l := range []struct {
		name string
		ys   []float64
		c    color.Color
	}{
		{"Cloud", cloud, cloudColor},
		{"Humidity", humidity, humidityColor},
		{"Active", active, activeColor},
	} {
		line, err := plotter.NewLine(xys(steps, l.ys))
		if err != nil {
			return written, err
		}
		line.Color = l.c
		p.Add(line)
		p.Legend.Add(l.name, line)
	}
	path, err := save(p, dir, prefix, "flag_counts")
	if err != nil {
		return written, err
	}
	written = append(written, path)

	if last, ok := series.Last(); ok {
		p = newPlot("Final cell states", "", "Cells")
		finals := []struct {
			v float64
			c color.Color
		}{
			{float64(last.Cloud), cloudColor},
			{float64(last.Humidity), humidityColor},
			{float64(last.Active), activeColor},
		}
		for i, f := range finals {
			bar, err := plotter.NewBarChart(plotter.Values{f.v}, vg.Points(40))
			if err != nil {
				return written, err
			}
			bar.Color = f.c
			bar.XMin = float64(i)
			p.Add(bar)
		}
		p.NominalX("Cloud", "Humidity", "Active")
		path, err = save(p, dir, prefix, "final_flags")
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	p = newPlot("Humidity vs active", "Humidity", "Active")
	sc, err := plotter.NewScatter(xys(humidity, active))
	if err != nil {
		return written, err
	}
	sc.GlyphStyle.Color = scatterColor
	p.Add(sc)
	path, err = save(p, dir, prefix, "humidity_vs_active")
	if err != nil {
		return written, err
	}
	return append(written, path), nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, min(len(xs), len(ys)))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func save(p *plot.Plot, dir, prefix, name string) (string, error) {
	file := name + ".png"
	if prefix != "" {
		file = prefix + "_" + file
	}
	path := filepath.Join(dir, file)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save %s: %w", file, err)
	}
	return path, nil
}
