//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"cloud-ca/internal/app"
	"cloud-ca/internal/charts"
	"cloud-ca/internal/core"
	"cloud-ca/internal/sims/clouds"
	_ "cloud-ca/internal/sims/droplets"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, _, err := cfg.NewSim()
	if err != nil {
		log.Fatalf("create sim: %v", err)
	}
	settings := core.SettingsOf(sim)

	game := app.New(sim, settings.Scale, cfg.Seed, settings.MaxSteps)
	size := sim.Size()

	ebiten.SetWindowTitle("cloud-ca: " + sim.Name())
	ebiten.SetTPS(settings.FPS)
	ebiten.SetWindowSize(size.W*settings.Scale+app.HUDWidth, size.H*settings.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}

	if cfg.Plots == "" || game.Series().Len() == 0 {
		return
	}
	paths, err := charts.Write(game.Series(), sim.Name() == clouds.Name, cfg.Plots, sim.Name())
	if err != nil {
		log.Fatalf("write plots: %v", err)
	}
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}
}
