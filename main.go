package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/display"
	"github.com/sheikhrachel/go-gol-torus/export"
	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	config, err := utils.ParseArgs("gol", args, os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case err != nil:
		fmt.Fprintf(os.Stderr, "gol: %v\n", err)
		return exitInvalidUsage
	}

	grid, err := game.InitialGrid(config)
	if err != nil {
		log.Printf("failed to build initial grid: %v", err)
		return exitFailure
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = simulate(ctx, config, grid); err != nil {
		log.Printf("simulation failed: %v", err)
		return exitFailure
	}
	return exitOK
}

func simulate(ctx context.Context, config utils.Config, grid *model.Grid) error {
	if config.Display != utils.DisplayTerminal {
		game.DisplayGameInfo(os.Stdout, config, grid)
	}

	sim := game.New(config, grid)

	var exporter *export.Exporter
	if config.MovFile != "" {
		var err error
		exporter, err = export.New(config.MovFile, export.Options{
			Frames: config.Frames,
			FPS:    config.FPS,
			Scale:  config.Scale,
		})
		if err != nil {
			return err
		}
		sim.AddSink(exporter)
	}

	var err error
	switch config.Display {
	case utils.DisplayTerminal:
		var term *display.Terminal
		if term, err = display.OpenTerminal(); err == nil {
			err = term.Run(ctx, sim)
		}
	case utils.DisplayWindow:
		err = display.RunWindow(ctx, sim, config.Scale)
	case utils.DisplayText:
		sim.AddSink(model.NewTextRenderer(os.Stdout, true))
		err = sim.Run(ctx)
	case utils.DisplayNone:
		err = runHeadless(ctx, sim, exporter)
	}

	// restores the terminal before anything is printed
	closeErr := sim.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	fmt.Println(sim.Stats().Summary())
	if exporter != nil {
		fmt.Printf("Wrote %d frames to %s\n", exporter.Written(), exporter.Path())
	}
	return nil
}

// runHeadless steps without a display; with an exporter and no generation
// limit it stops once the video is complete
func runHeadless(ctx context.Context, sim *game.Simulation, exporter *export.Exporter) error {
	if exporter == nil {
		return sim.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sim.AddSink(game.SinkFunc(func(int, *model.Grid) error {
		if exporter.Finished() {
			cancel()
		}
		return nil
	}))
	return sim.Run(ctx)
}
