// Package sweep evaluates a grid of parameter overrides across several seeds
// with a pool of worker goroutines.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"

	"cloud-ca/internal/core"
	"cloud-ca/internal/driver"
	"cloud-ca/internal/stats"

	"gonum.org/v1/gonum/stat"
)

// Axis is one swept key and the values it takes.
type Axis struct {
	Key    string
	Values []string
}

// ParseAxis reads "key=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	key, list, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Axis{}, fmt.Errorf("vary %q is not key=v1,v2: %w", s, core.ErrInvalidConfig)
	}
	var values []string
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return Axis{}, fmt.Errorf("vary %q has no values: %w", s, core.ErrInvalidConfig)
	}
	return Axis{Key: key, Values: values}, nil
}

// Combinations returns the cartesian product of the axes. No axes yield a
// single empty combination.
func Combinations(axes []Axis) []map[string]string {
	out := []map[string]string{{}}
	for _, axis := range axes {
		next := make([]map[string]string, 0, len(out)*len(axis.Values))
		for _, base := range out {
			for _, v := range axis.Values {
				m := maps.Clone(base)
				m[axis.Key] = v
				next = append(next, m)
			}
		}
		out = next
	}
	return out
}

// Job is one run of the sweep.
type Job struct {
	Overrides map[string]string
	Seed      int64
}

// Result is the outcome of one job.
type Result struct {
	Job
	Final stats.Sample
	Steps int
	Err   error
}

// Plan describes a sweep.
type Plan struct {
	Sim     string
	Base    map[string]string
	Combos  []map[string]string
	Seeds   []int64
	Steps   int
	Workers int
}

// Run executes every combination × seed and returns results in completion
// order. Failed jobs carry their error instead of aborting the sweep.
func Run(ctx context.Context, plan Plan) []Result {
	jobs := make(chan Job)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < max(plan.Workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runJob(ctx, plan, job)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, combo := range plan.Combos {
			for _, seed := range plan.Seeds {
				select {
				case jobs <- Job{Overrides: combo, Seed: seed}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var all []Result
	for res := range results {
		all = append(all, res)
	}
	return all
}

// Validate builds the sim once per combination so that a bad key or value
// aborts the sweep before any job runs.
func (p Plan) Validate() error {
	var errs []error
	for _, combo := range p.Combos {
		if _, err := core.NewSim(p.Sim, p.config(combo, 0)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", Key(combo), err))
		}
	}
	return errors.Join(errs...)
}

func (p Plan) config(overrides map[string]string, seed int64) map[string]string {
	cfg := maps.Clone(p.Base)
	if cfg == nil {
		cfg = map[string]string{}
	}
	maps.Copy(cfg, overrides)
	if seed != 0 {
		cfg["seed"] = strconv.FormatInt(seed, 10)
	}
	return cfg
}

func runJob(ctx context.Context, plan Plan, job Job) Result {
	res := Result{Job: job}
	sim, err := core.NewSim(plan.Sim, plan.config(job.Overrides, job.Seed))
	if err != nil {
		res.Err = err
		return res
	}
	steps := plan.Steps
	if steps <= 0 {
		steps = core.SettingsOf(sim).MaxSteps
	}
	series, err := driver.Run(ctx, sim, steps)
	res.Steps = series.Len()
	res.Final, _ = series.Last()
	res.Err = err
	return res
}

// Summary aggregates the runs of one combination.
type Summary struct {
	Overrides   map[string]string
	Runs        int
	Failed      int
	MeanSize    float64
	MeanSizeStd float64
	Population  float64
	Cloud       float64
}

// Key renders the overrides in sorted key order.
func (s Summary) Key() string { return Key(s.Overrides) }

// Key renders overrides as "k1=v1 k2=v2" in sorted key order.
func Key(overrides map[string]string) string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + overrides[k]
	}
	return strings.Join(parts, " ")
}

// Summarise groups results by combination and sorts them by final mean size,
// then by final cloud count, both descending.
func Summarise(results []Result) []Summary {
	type group struct {
		overrides         map[string]string
		means, pops, clds []float64
		failed            int
	}
	groups := map[string]*group{}
	var order []string
	for _, r := range results {
		k := Key(r.Overrides)
		g, ok := groups[k]
		if !ok {
			g = &group{overrides: r.Overrides}
			groups[k] = g
			order = append(order, k)
		}
		if r.Err != nil {
			g.failed++
			continue
		}
		g.means = append(g.means, r.Final.Mean)
		g.pops = append(g.pops, float64(r.Final.Population))
		g.clds = append(g.clds, float64(r.Final.Cloud))
	}

	out := make([]Summary, 0, len(order))
	for _, k := range order {
		g := groups[k]
		s := Summary{Overrides: g.overrides, Runs: len(g.means), Failed: g.failed}
		if len(g.means) > 0 {
			s.MeanSize = stat.Mean(g.means, nil)
			if len(g.means) > 1 {
				s.MeanSizeStd = stat.StdDev(g.means, nil)
			}
			s.Population = stat.Mean(g.pops, nil)
			s.Cloud = stat.Mean(g.clds, nil)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MeanSize != out[j].MeanSize {
			return out[i].MeanSize > out[j].MeanSize
		}
		return out[i].Cloud > out[j].Cloud
	})
	return out
}
