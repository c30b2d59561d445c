package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the world and output configuration.
type Config struct {
	ChunkSize  [3]int `yaml:"chunk_size" json:"chunk_size"`   // x, y, z in voxels
	AtlasTiles int    `yaml:"atlas_tiles" json:"atlas_tiles"` // tiles per atlas edge
	AtlasFile  string `yaml:"atlas_file" json:"atlas_file"`   // optional JSON tile table

	Seed          int64   `yaml:"seed" json:"seed"`
	GeneratorType string  `yaml:"generator" json:"generator"` // "noise" or "flat"
	FlatHeight    float64 `yaml:"flat_height" json:"flat_height"`
	Terrain       Terrain `yaml:"terrain" json:"terrain"`

	Radius  int `yaml:"radius" json:"radius"`   // chunks generated around the origin
	Workers int `yaml:"workers" json:"workers"` // 0 = one per CPU

	StreamAddr string `yaml:"stream_addr" json:"stream_addr"` // websocket viewer address, empty = off
	ExportDir  string `yaml:"export_dir" json:"export_dir"`   // OBJ + archive output, empty = off
	IndexPath  string `yaml:"index_path" json:"index_path"`   // SQLite mesh index, empty = off
	LogLevel   string `yaml:"log_level" json:"log_level"`
}

// Terrain shapes the noise height source.
type Terrain struct {
	Base        float64 `yaml:"base" json:"base"`
	Amplitude   float64 `yaml:"amplitude" json:"amplitude"`
	Scale       float64 `yaml:"scale" json:"scale"`
	Octaves     int     `yaml:"octaves" json:"octaves"`
	Persistence float64 `yaml:"persistence" json:"persistence"`
}

// DefaultConfig returns a Config with the reference chunk and atlas sizes.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:     [3]int{16, 64, 16},
		AtlasTiles:    16,
		GeneratorType: "noise",
		FlatHeight:    8,
		Terrain: Terrain{
			Base:        32,
			Amplitude:   12,
			Scale:       64,
			Octaves:     4,
			Persistence: 0.5,
		},
		Radius:   1,
		LogLevel: "info",
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce a world.
func (c *Config) Validate() error {
	for i, n := range c.ChunkSize {
		if n <= 0 {
			return fmt.Errorf("chunk_size[%d] must be positive, got %d", i, n)
		}
	}
	if c.AtlasTiles <= 0 {
		return fmt.Errorf("atlas_tiles must be positive, got %d", c.AtlasTiles)
	}
	switch c.GeneratorType {
	case "noise", "flat":
	default:
		return fmt.Errorf("unknown generator %q", c.GeneratorType)
	}
	if c.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %d", c.Radius)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	cfg.ChunkSize = fromFile.ChunkSize
	cfg.AtlasTiles = fromFile.AtlasTiles
	cfg.Terrain = fromFile.Terrain
	cfg.FlatHeight = fromFile.FlatHeight

	if !explicitFlags["atlas"] {
		cfg.AtlasFile = fromFile.AtlasFile
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["radius"] {
		cfg.Radius = fromFile.Radius
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["stream"] {
		cfg.StreamAddr = fromFile.StreamAddr
	}
	if !explicitFlags["export"] {
		cfg.ExportDir = fromFile.ExportDir
	}
	if !explicitFlags["index"] {
		cfg.IndexPath = fromFile.IndexPath
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}
