// Package driver owns the headless step loop: it advances a sim, samples
// statistics after every generation and hands them to observers.
package driver

import (
	"context"
	"errors"

	"cloud-ca/internal/core"
	"cloud-ca/internal/stats"
)

// ErrStop may be returned by an observer to end the run early without error.
var ErrStop = errors.New("driver: stop requested")

// Sampler is implemented by sims that can summarise their current generation.
type Sampler interface {
	Sample() stats.Sample
}

// Observer is called once per step with the freshly recorded sample. step is
// the zero-based iteration of the current run.
type Observer func(step int, sim core.Sim, s stats.Sample) error

// Runner steps a simulation for up to MaxSteps generations. A non-positive
// MaxSteps runs until the context is done or an observer stops the run.
type Runner struct {
	MaxSteps  int
	TPS       int
	Observers []Observer
}

// Run steps sim with no pacing.
func Run(ctx context.Context, sim core.Sim, maxSteps int, observers ...Observer) (*stats.Series, error) {
	r := Runner{MaxSteps: maxSteps, Observers: observers}
	return r.Run(ctx, sim)
}

// Run executes the loop and returns the recorded series. The series is
// returned even when the run ends with an error.
func (r Runner) Run(ctx context.Context, sim core.Sim) (*stats.Series, error) {
	series := &stats.Series{}
	sampler, _ := sim.(Sampler)
	pace := core.NewFixedStep(r.TPS)
	for step := 0; r.MaxSteps <= 0 || step < r.MaxSteps; step++ {
		if err := pace.Wait(ctx); err != nil {
			return series, err
		}
		sim.Step()
		s := stats.Sample{Step: step + 1}
		if sampler != nil {
			s = sampler.Sample()
		}
		s = series.Append(s)
		for _, obs := range r.Observers {
			if err := obs(step, sim, s); err != nil {
				if errors.Is(err, ErrStop) {
					return series, nil
				}
				return series, err
			}
		}
	}
	return series, nil
}

// Every wraps obs so it only fires on every n-th step and on step zero.
func Every(n int, obs Observer) Observer {
	if n <= 1 {
		return obs
	}
	return func(step int, sim core.Sim, s stats.Sample) error {
		if step%n != 0 {
			return nil
		}
		return obs(step, sim, s)
	}
}
