package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnConfig places one NPC on the map. An empty Kind means a
// weighted-random pick from the NPC registry.
type SpawnConfig struct {
	Kind  string `yaml:"kind"`
	TileX int    `yaml:"tileX"`
	TileY int    `yaml:"tileY"`
}

// TransitionConfig declares a map transition zone.
type TransitionConfig struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Dest      string `yaml:"dest"`
	DestTileX int    `yaml:"destTileX"`
	DestTileY int    `yaml:"destTileY"`
}

// MapConfig holds the tile layout and transition zones for one map.
type MapConfig struct {
	Rows        []string           `yaml:"rows"`
	Transitions []TransitionConfig `yaml:"transitions"`
}

// PlayerSpawnConfig holds the player's start tile and base attributes.
type PlayerSpawnConfig struct {
	TileX    int     `yaml:"tileX"`
	TileY    int     `yaml:"tileY"`
	Strength float64 `yaml:"strength"`
	Vitality float64 `yaml:"vitality"`
}

// Config holds the scenario configuration for one game session.
type Config struct {
	// TickMs is the simulation tick interval in milliseconds.
	TickMs int `yaml:"tickMs"`
	// Seed drives random spawning and roaming. Zero means time-seeded.
	Seed   int64             `yaml:"seed"`
	Player PlayerSpawnConfig `yaml:"player"`
	Map    MapConfig         `yaml:"map"`
	Spawns []SpawnConfig     `yaml:"spawns"`
}

// Default returns the built-in scenario used when no config file is given.
func Default() *Config {
	return &Config{
		TickMs: 16,
		Player: PlayerSpawnConfig{TileX: 2, TileY: 2, Strength: 5, Vitality: 5},
		Map: MapConfig{
			Rows: []string{
				"####################",
				"#..................#",
				"#..,,..........,,..#",
				"#..,,....####..,,..#",
				"#........#..#......#",
				"#........#..#......#",
				"#...~~...####......#",
				"#...~~.............#",
				"#..................#",
				"####################",
			},
			Transitions: []TransitionConfig{
				{X: 18, Y: 4, Width: 1, Height: 2, Dest: "ember_hill", DestTileX: 1, DestTileY: 4},
			},
		},
		Spawns: []SpawnConfig{
			{Kind: "slime", TileX: 8, TileY: 2},
			{Kind: "bat", TileX: 14, TileY: 7},
			{Kind: "villager", TileX: 4, TileY: 8},
			{TileX: 16, TileY: 2}, // weighted random
		},
	}
}

// LoadConfig reads a scenario config from a YAML file, filling unset
// fields from the defaults.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = 16
	}
	if len(cfg.Map.Rows) == 0 {
		return nil, fmt.Errorf("config %s: map has no rows", path)
	}
	return cfg, nil
}
