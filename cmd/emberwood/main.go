// Package main is the entry point for Emberwood.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/game"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/telemetry"
	"github.com/samdwyer/emberwood/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a scenario config file (YAML)")
	view := flag.Bool("view", false, "run with the interactive terminal viewer")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	logger.Init()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Simulation will run without observability")
		// Continue without telemetry - the simulation still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg := game.Default()
	if *configPath != "" {
		cfg, err = game.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	recorder := &events.Recorder{}
	var sink events.Sink = recorder
	if !*view {
		// Headless runs log the event stream instead of rendering it.
		sink = events.MultiSink{recorder, events.LogSink{Logger: logger.Log}}
	}
	g, err := game.New(ctx, cfg, sink, time.Now())
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if *view {
		runViewer(ctx, g, recorder, cfg)
		return
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Simulation error: %v", err)
	}
}

// runViewer attaches the terminal renderer and hands control to the
// interactive loop.
func runViewer(ctx context.Context, g *game.Game, recorder *events.Recorder, cfg *game.Config) {
	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen, recorder)
	viewer := ui.NewViewer(screen, renderer, g, time.Duration(cfg.TickMs)*time.Millisecond)
	if err := viewer.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Viewer error: %v", err)
	}
}
