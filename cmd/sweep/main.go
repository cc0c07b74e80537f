package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"cloud-ca/internal/app"
	_ "cloud-ca/internal/sims/clouds"
	_ "cloud-ca/internal/sims/droplets"
	"cloud-ca/internal/sweep"
)

type axisList []sweep.Axis

func (l *axisList) String() string {
	parts := make([]string, len(*l))
	for i, a := range *l {
		parts[i] = a.Key + "=" + strings.Join(a.Values, ",")
	}
	return strings.Join(parts, " ")
}

func (l *axisList) Set(value string) error {
	a, err := sweep.ParseAxis(value)
	if err != nil {
		return err
	}
	*l = append(*l, a)
	return nil
}

func main() {
	sim := flag.String("sim", "steady", "simulation to sweep")
	steps := flag.Int("steps", 0, "ticks to simulate per run (0 uses the sim default)")
	seeds := flag.Int("seeds", 3, "number of seeds per combination, starting at -seed")
	seed := flag.Int64("seed", 1, "first seed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 10, "rows to print")
	var vary axisList
	flag.Var(&vary, "vary", "swept parameter in key=v1,v2 form (repeatable)")
	var overrides app.KVList
	flag.Var(&overrides, "set", "fixed parameter override in key=value form (repeatable)")
	flag.Parse()

	if len(vary) == 0 {
		vary = axisList{
			{Key: "p_add", Values: []string{"0.01", "0.05", "0.1"}},
			{Key: "p_remove", Values: []string{"0.01", "0.03", "0.1"}},
		}
	}
	base, err := overrides.Map()
	if err != nil {
		log.Fatal(err)
	}
	plan := sweep.Plan{
		Sim:     *sim,
		Base:    base,
		Combos:  sweep.Combinations(vary),
		Steps:   *steps,
		Workers: *workers,
	}
	for i := 0; i < *seeds; i++ {
		plan.Seeds = append(plan.Seeds, *seed+int64(i))
	}

	if err := plan.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %s: %d combinations × %d seeds (%d workers)\n", *sim, len(plan.Combos), len(plan.Seeds), *workers)
	start := time.Now()
	results := sweep.Run(ctx, plan)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("%s seed=%d: %v", sweep.Key(r.Overrides), r.Seed, r.Err)
		}
	}
	summaries := sweep.Summarise(results)

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(summaries)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(summaries) && i < *top; i++ {
		s := summaries[i]
		fmt.Printf("%2d) mean=%.2f±%.2f pop=%.1f cloud=%.1f runs=%d failed=%d %s\n",
			i+1, s.MeanSize, s.MeanSizeStd, s.Population, s.Cloud, s.Runs, s.Failed, s.Key())
	}
}
