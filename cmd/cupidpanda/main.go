package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/amalg/cupid-panda/internal/game"
	"github.com/amalg/cupid-panda/internal/physics"
	"github.com/amalg/cupid-panda/internal/render"
	"github.com/amalg/cupid-panda/internal/sound"
	"github.com/amalg/cupid-panda/internal/tilemap"
)

func main() {
	configPath := flag.String("config", "", "JSON tuning file (default: built-in tuning)")
	mapPath := flag.String("map", "", "Tile map file (default: built-in meadow)")
	seed := flag.Int64("seed", 0, "Random seed (default: current time)")
	logFile := flag.String("log", "", "Log file path (default: stderr)")
	mute := flag.Bool("mute", false, "Disable sound")
	scale := flag.Int("scale", 2, "Window scale factor")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	terrain, err := loadMap(*mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load map: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("[GAME] Seed %d", *seed)

	engine := game.NewEngine(config,
		func() physics.World {
			return physics.NewTileWorld(terrain.Cols, terrain.Rows, terrain.TileSize, terrain.Solid)
		},
		game.NewRandSpawner(rand.New(rand.NewSource(*seed)), config.SpawnPoints))

	player := sound.NewPlayer(!*mute)
	defer player.Close()

	ebiten.SetTPS(config.TickRate)
	ebiten.SetWindowSize(int(config.ScreenWidth)*(*scale), int(config.ScreenHeight)*(*scale))
	ebiten.SetWindowTitle("Cupid Panda")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(render.NewGame(engine, terrain, player)); err != nil && err != ebiten.Termination {
		log.Printf("[GAME] %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (game.GameConfig, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}
	return game.LoadConfig(path)
}

func loadMap(path string) (*tilemap.Map, error) {
	if path == "" {
		return tilemap.Builtin(tilemap.DefaultMapName)
	}
	return tilemap.Load(path)
}
