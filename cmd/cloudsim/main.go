package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"cloud-ca/internal/app"
	"cloud-ca/internal/charts"
	"cloud-ca/internal/core"
	"cloud-ca/internal/driver"
	"cloud-ca/internal/render"
	"cloud-ca/internal/sims/clouds"
	_ "cloud-ca/internal/sims/droplets"
	"cloud-ca/internal/stats"
	"cloud-ca/internal/stream"
)

type options struct {
	video    string
	term     bool
	serve    string
	params   bool
	logEvery int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var opts options
	flag.StringVar(&opts.video, "video", "", "write an MJPEG AVI of the run to this file")
	flag.BoolVar(&opts.term, "term", false, "draw the grid in the terminal (Esc or q quits)")
	flag.StringVar(&opts.serve, "serve", "", "stream per-step samples over a websocket at ADDR/ws")
	flag.BoolVar(&opts.params, "params", false, "print the effective parameters and exit")
	flag.IntVar(&opts.logEvery, "log-every", 50, "log progress every N steps (0 disables)")
	flag.Parse()

	if err := run(cfg, opts); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource of the run, so deferred closes finish before main
// exits on error.
func run(cfg *app.Config, opts options) error {
	sim, _, err := cfg.NewSim()
	if err != nil {
		return fmt.Errorf("create sim: %w", err)
	}
	if opts.params {
		printParams(sim)
		return nil
	}
	settings := core.SettingsOf(sim)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := driver.Runner{MaxSteps: settings.MaxSteps}
	if opts.logEvery > 0 && !opts.term {
		runner.Observers = append(runner.Observers, driver.Every(opts.logEvery, logProgress))
	}

	if opts.video != "" {
		rec, err := render.NewRecorder(opts.video, sim.Size(), settings.Scale, settings.FPS, 0)
		if err != nil {
			return fmt.Errorf("open video: %w", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("close video: %v", err)
			}
			log.Printf("wrote %d frames to %s", rec.Frames(), opts.video)
		}()
		if err := rec.AddFrame(sim); err != nil {
			return fmt.Errorf("record: %w", err)
		}
		runner.Observers = append(runner.Observers, func(_ int, s core.Sim, _ stats.Sample) error {
			return rec.AddFrame(s)
		})
	}

	if opts.serve != "" {
		hub := stream.NewHub()
		go func() {
			if err := stream.Serve(ctx, opts.serve, hub); err != nil {
				log.Printf("stream: %v", err)
			}
		}()
		log.Printf("streaming samples on ws://%s/ws", opts.serve)
		runner.Observers = append(runner.Observers, func(_ int, s core.Sim, sample stats.Sample) error {
			hub.Publish(stream.Message{Sim: s.Name(), Sample: sample})
			return nil
		})
	}

	if opts.term {
		t, err := render.OpenTerminal()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer t.Close()
		runner.TPS = settings.FPS
		runner.Observers = append(runner.Observers, func(_ int, s core.Sim, _ stats.Sample) error {
			select {
			case <-t.Quit():
				return driver.ErrStop
			default:
			}
			return t.Draw(s)
		})
	}

	series, err := runner.Run(ctx, sim)
	if err != nil && ctx.Err() == nil {
		log.Printf("run stopped: %v", err)
	}
	if last, ok := series.Last(); ok {
		log.Printf("%s finished after %d steps: %s", sim.Name(), series.Len(), describe(last))
	}

	if cfg.Plots != "" && series.Len() > 0 {
		paths, err := charts.Write(series, sim.Name() == clouds.Name, cfg.Plots, sim.Name())
		for _, p := range paths {
			log.Printf("wrote %s", p)
		}
		if err != nil {
			return fmt.Errorf("write plots: %w", err)
		}
	}
	return nil
}

func logProgress(_ int, sim core.Sim, s stats.Sample) error {
	log.Printf("%s step %d: %s", sim.Name(), s.Step, describe(s))
	return nil
}

func describe(s stats.Sample) string {
	if s.Humidity+s.Active+s.Cloud > 0 {
		return fmt.Sprintf("humidity=%d active=%d cloud=%d", s.Humidity, s.Active, s.Cloud)
	}
	return fmt.Sprintf("droplets=%d mean=%.2f mass=%.1f", s.Population, s.Mean, s.TotalMass)
}

func printParams(sim core.Sim) {
	provider, ok := sim.(core.ParameterProvider)
	if !ok {
		fmt.Printf("%s exposes no parameters\n", sim.Name())
		return
	}
	for _, g := range provider.Parameters().Groups {
		fmt.Printf("%s:\n", g.Name)
		for _, p := range g.Params {
			fmt.Printf("  %-24s %s\n", p.Key, p.Value)
		}
	}
}
