// Package stats derives per-step summary statistics from lattice snapshots
// and accumulates them into an append-only series for plotting and
// streaming.
package stats

import (
	"slices"

	"cloud-ca/internal/core"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample summarises one generation. Mass lattices fill Sizes, Mean and
// TotalMass; flag lattices fill the three flag counts.
//
// Step counts the generations applied since the last reset, so the first
// sample after one Step is step 1.
type Sample struct {
	Step       int       `json:"step"`
	Sizes      []float64 `json:"sizes,omitempty"`
	Population int       `json:"population"`
	Mean       float64   `json:"mean"`
	TotalMass  float64   `json:"total_mass"`
	Humidity   int       `json:"humidity"`
	Active     int       `json:"active"`
	Cloud      int       `json:"cloud"`
}

// FlagFunc extracts the humidity/active/cloud flags from a cell.
type FlagFunc[C any] func(C) (humidity, active, cloud bool)

// CollectMass samples a mass lattice. Sizes holds the occupied cells in
// row-major order.
func CollectMass(l *core.Lattice[float64]) Sample {
	var sizes []float64
	for _, v := range l.Cells() {
		if v > 0 {
			sizes = append(sizes, v)
		}
	}
	s := Sample{Sizes: sizes, Population: len(sizes)}
	if len(sizes) > 0 {
		s.TotalMass = floats.Sum(sizes)
		s.Mean = stat.Mean(sizes, nil)
	}
	return s
}

// CollectFlags samples a flag lattice. Population counts cells carrying at
// least one flag.
func CollectFlags[C any](l *core.Lattice[C], flags FlagFunc[C]) Sample {
	var s Sample
	for _, c := range l.Cells() {
		h, a, cl := flags(c)
		if h {
			s.Humidity++
		}
		if a {
			s.Active++
		}
		if cl {
			s.Cloud++
		}
		if h || a || cl {
			s.Population++
		}
	}
	return s
}

// Series is an ordered, append-only run history.
type Series struct {
	samples []Sample
}

// Append stores a private copy of sample and returns it. The sample's Step is
// kept as given.
func (s *Series) Append(sample Sample) Sample {
	sample.Sizes = slices.Clone(sample.Sizes)
	s.samples = append(s.samples, sample)
	return clone(sample)
}

// Len returns the number of recorded steps.
func (s *Series) Len() int { return len(s.samples) }

// At returns a copy of the i-th sample.
func (s *Series) At(i int) Sample { return clone(s.samples[i]) }

// Last returns the most recent sample.
func (s *Series) Last() (Sample, bool) {
	if len(s.samples) == 0 {
		return Sample{}, false
	}
	return clone(s.samples[len(s.samples)-1]), true
}

// Steps returns the step indices as floats for plotting.
func (s *Series) Steps() []float64 {
	return s.column(func(x Sample) float64 { return float64(x.Step) })
}

// Means returns the mean droplet size per step.
func (s *Series) Means() []float64 {
	return s.column(func(x Sample) float64 { return x.Mean })
}

// Populations returns the occupied-cell count per step.
func (s *Series) Populations() []float64 {
	return s.column(func(x Sample) float64 { return float64(x.Population) })
}

// TotalMasses returns the summed mass per step.
func (s *Series) TotalMasses() []float64 {
	return s.column(func(x Sample) float64 { return x.TotalMass })
}

// FlagCounts returns the humidity, active and cloud counts per step.
func (s *Series) FlagCounts() (humidity, active, cloud []float64) {
	humidity = s.column(func(x Sample) float64 { return float64(x.Humidity) })
	active = s.column(func(x Sample) float64 { return float64(x.Active) })
	cloud = s.column(func(x Sample) float64 { return float64(x.Cloud) })
	return humidity, active, cloud
}

// FinalSizes returns the occupied sizes of the last step.
func (s *Series) FinalSizes() []float64 {
	last, ok := s.Last()
	if !ok {
		return nil
	}
	return last.Sizes
}

func (s *Series) column(f func(Sample) float64) []float64 {
	out := make([]float64, len(s.samples))
	for i, x := range s.samples {
		out[i] = f(x)
	}
	return out
}

func clone(s Sample) Sample {
	s.Sizes = slices.Clone(s.Sizes)
	return s
}
