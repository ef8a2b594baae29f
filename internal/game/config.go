package game

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/amalg/cupid-panda/internal/vmath"
)

// MovementStyle selects the Mover a Normal panda wanders with.
type MovementStyle string

const (
	MoveWander  MovementStyle = "wander"
	MovePatrolX MovementStyle = "patrol-x"
	MovePatrolY MovementStyle = "patrol-y"
)

// GameConfig holds the tuning values of a session.
type GameConfig struct {
	ScreenWidth  float64 `json:"screen_width"`
	ScreenHeight float64 `json:"screen_height"`
	TickRate     int     `json:"tick_rate"` // Ticks per second for Engine.Run

	PlayerSpeed   float64       `json:"player_speed"`
	PlayerSize    int           `json:"player_size"`
	PlayerStart   vmath.Vec2    `json:"player_start"`
	ThrowCooldown time.Duration `json:"throw_cooldown"`

	PandaSize          int           `json:"panda_size"`
	InitialPandas      int           `json:"initial_pandas"`
	SpawnPoints        []vmath.Vec2  `json:"spawn_points"`
	WanderSpeedMin     float64       `json:"wander_speed_min"`
	WanderSpeedMax     float64       `json:"wander_speed_max"`
	WanderTurnInterval time.Duration `json:"wander_turn_interval"`
	PandaMovement      MovementStyle `json:"panda_movement"`
	PatrolMin          float64       `json:"patrol_min"`
	PatrolMax          float64       `json:"patrol_max"`
	IndependenceAge    time.Duration `json:"independence_age"` // Pandas older than this die
	LoveDuration       time.Duration `json:"love_duration"`
	LoveCooldown       time.Duration `json:"love_cooldown"`

	GrabRange  float64    `json:"grab_range"`
	GrabOffset vmath.Vec2 `json:"grab_offset"` // Grabbed panda position relative to the player
	PairRange  float64    `json:"pair_range"`
	PairBonus  int        `json:"pair_bonus"`

	ThrowSpeed     float64 `json:"throw_speed"`
	ThrowDecayRate float64 `json:"throw_decay_rate"`
	ThrowStopSpeed float64 `json:"throw_stop_speed"`

	StorkSpeed       float64 `json:"stork_speed"`
	StorkArrivalDist float64 `json:"stork_arrival_dist"`
	StorkEdgeMargin  float64 `json:"stork_edge_margin"` // How far off-screen storks start

	InitialBamboo     float64       `json:"initial_bamboo"`
	HungerRate        float64       `json:"hunger_rate"` // Bamboo per hungry panda per second
	ReplenishAmount   float64       `json:"replenish_amount"`
	ReplenishInterval time.Duration `json:"replenish_interval"`

	FrameTime time.Duration `json:"frame_time"` // Animation frame length
}

// DefaultConfig returns the tuning used by the shipped game.
func DefaultConfig() GameConfig {
	return GameConfig{
		ScreenWidth:  640,
		ScreenHeight: 480,
		TickRate:     60,

		PlayerSpeed:   100,
		PlayerSize:    16,
		PlayerStart:   vmath.V(50, 80),
		ThrowCooldown: 500 * time.Millisecond,

		PandaSize:     16,
		InitialPandas: 4,
		SpawnPoints: []vmath.Vec2{
			vmath.V(170, 230),
			vmath.V(200, 100),
			vmath.V(350, 170),
			vmath.V(100, 350),
		},
		WanderSpeedMin:     0,
		WanderSpeedMax:     50,
		WanderTurnInterval: 1500 * time.Millisecond,
		PandaMovement:      MoveWander,
		PatrolMin:          40,
		PatrolMax:          130,
		IndependenceAge:    60 * time.Second,
		LoveDuration:       3 * time.Second,
		LoveCooldown:       5 * time.Second,

		GrabRange:  16,
		GrabOffset: vmath.V(0, -5),
		PairRange:  12,
		PairBonus:  100,

		ThrowSpeed:     150,
		ThrowDecayRate: 1,
		ThrowStopSpeed: 1,

		StorkSpeed:       40,
		StorkArrivalDist: 16,
		StorkEdgeMargin:  32,

		InitialBamboo:     100,
		HungerRate:        0.25,
		ReplenishAmount:   5,
		ReplenishInterval: 5 * time.Second,

		FrameTime: 100 * time.Millisecond,
	}
}

// Validate reports the first tuning value that would break the simulation.
func (c GameConfig) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("screen size must be positive, got %gx%g", c.ScreenWidth, c.ScreenHeight)
	case c.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	case c.PlayerSize <= 0 || c.PandaSize <= 0:
		return fmt.Errorf("actor sizes must be positive")
	case c.PlayerSpeed < 0:
		return fmt.Errorf("player_speed must not be negative")
	case c.InitialPandas > 0 && len(c.SpawnPoints) == 0:
		return fmt.Errorf("spawn_points must not be empty")
	case c.WanderSpeedMax < c.WanderSpeedMin:
		return fmt.Errorf("wander_speed_max %g below wander_speed_min %g", c.WanderSpeedMax, c.WanderSpeedMin)
	case c.GrabRange <= 0 || c.PairRange <= 0:
		return fmt.Errorf("grab_range and pair_range must be positive")
	case c.ThrowDecayRate <= 0 || c.ThrowStopSpeed <= 0:
		return fmt.Errorf("throw_decay_rate and throw_stop_speed must be positive")
	case c.StorkSpeed <= 0 || c.StorkArrivalDist <= 0:
		return fmt.Errorf("stork_speed and stork_arrival_dist must be positive")
	case c.InitialBamboo <= 0:
		return fmt.Errorf("initial_bamboo must be positive, got %g", c.InitialBamboo)
	case c.HungerRate < 0 || c.ReplenishAmount < 0:
		return fmt.Errorf("hunger_rate and replenish_amount must not be negative")
	case c.ReplenishInterval <= 0 || c.FrameTime <= 0:
		return fmt.Errorf("replenish_interval and frame_time must be positive")
	case c.IndependenceAge <= 0 || c.LoveDuration < 0 || c.LoveCooldown < 0:
		return fmt.Errorf("panda timers must not be negative")
	}

	switch c.PandaMovement {
	case MoveWander, MovePatrolX, MovePatrolY:
	default:
		return fmt.Errorf("unknown panda_movement %q", c.PandaMovement)
	}
	return nil
}

// LoadConfig reads a JSON file whose fields override DefaultConfig.
func LoadConfig(path string) (GameConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
