package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/cupid-panda/internal/game"
	"github.com/amalg/cupid-panda/internal/physics"
	"github.com/amalg/cupid-panda/internal/sound"
	"github.com/amalg/cupid-panda/internal/tilemap"
	"github.com/amalg/cupid-panda/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "JSON tuning file (default: built-in tuning)")
	mapPath := flag.String("map", "", "Tile map file (default: built-in meadow)")
	seed := flag.Int64("seed", 0, "Random seed (default: current time)")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	mute := flag.Bool("mute", false, "Disable sound")
	hold := flag.Duration("hold", ui.DefaultHoldWindow, "How long a direction key counts as held after a press")
	flag.Parse()

	// Redirect log output before the engine starts.
	// Any stderr output will corrupt Bubbletea's terminal rendering.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	config := game.DefaultConfig()
	if *configPath != "" {
		c, err := game.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		config = c
	}

	var terrain *tilemap.Map
	var err error
	if *mapPath != "" {
		terrain, err = tilemap.Load(*mapPath)
	} else {
		terrain, err = tilemap.Builtin(tilemap.DefaultMapName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load map: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	engine := game.NewEngine(config,
		func() physics.World {
			return physics.NewTileWorld(terrain.Cols, terrain.Rows, terrain.TileSize, terrain.Solid)
		},
		game.NewRandSpawner(rand.New(rand.NewSource(*seed)), config.SpawnPoints))

	player := sound.NewPlayer(!*mute)
	defer player.Close()

	snaps := make(chan game.Snapshot, 1)
	engine.OnTick(func(s game.Snapshot) {
		player.Play(s.Events)
		ui.Offer(snaps, s)
	})

	keys := ui.NewKeyLatch(*hold)
	go engine.Run(keys)

	model := ui.NewModel(engine, keys, terrain, snaps)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		engine.Stop()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	engine.Stop()
}
