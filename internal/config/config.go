package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvInlineConfig carries a base64 encoded YAML document that replaces the
// configuration file when set.
const EnvInlineConfig = "VOXELBLOOM_CONFIG_YAML_B64"

// Vec3 is a YAML friendly triple, written as `[x, y, z]`.
type Vec3 [3]float64

// Config captures everything needed to build and render one scene.
type Config struct {
	Scene      SceneConfig      `yaml:"scene" json:"scene"`
	Generation GenerationConfig `yaml:"generation" json:"generation"`
	Render     RenderConfig     `yaml:"render" json:"render"`
}

type SceneConfig struct {
	Exposure   float64     `yaml:"exposure" json:"exposure"`
	VoxelEdges bool        `yaml:"voxel_edges" json:"voxel_edges"`
	Extent     int         `yaml:"extent" json:"extent"` // grid spans [-extent, extent) on every axis
	Background Vec3        `yaml:"background" json:"background"`
	Floor      FloorConfig `yaml:"floor" json:"floor"`
	Light      LightConfig `yaml:"light" json:"light"`
}

type FloorConfig struct {
	Height int  `yaml:"height" json:"height"`
	Color  Vec3 `yaml:"color" json:"color"`
}

type LightConfig struct {
	Direction Vec3    `yaml:"direction" json:"direction"`
	Angle     float64 `yaml:"angle" json:"angle"` // angular radius in radians, softens shading
	Color     Vec3    `yaml:"color" json:"color"` // divided by scene.exposure at load time
}

type GenerationConfig struct {
	Seed    int64 `yaml:"seed" json:"seed"`       // 0 picks a seed from the clock
	Workers int   `yaml:"workers" json:"workers"` // 0 uses GOMAXPROCS
}

type RenderConfig struct {
	OutputDir string   `yaml:"output_dir" json:"output_dir"`
	Name      string   `yaml:"name" json:"name"`
	Modes     []string `yaml:"modes" json:"modes"`
	TileWidth int      `yaml:"tile_width" json:"tile_width"`
	Gamma     float64  `yaml:"gamma" json:"gamma"`
}

const (
	RenderIsometric = "isometric"
	RenderPlan      = "plan"
)

// Default mirrors the scene the flower was originally composed against.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Exposure:   1.0,
			VoxelEdges: false,
			Extent:     64,
			Background: Vec3{0.5, 0.5, 0.4},
			Floor: FloorConfig{
				Height: -64,
				Color:  Vec3{0.6, 0.9, 0.6},
			},
			Light: LightConfig{
				Direction: Vec3{1, 1, 1},
				Angle:     0.2,
				Color:     Vec3{1, 1, 1},
			},
		},
		Generation: GenerationConfig{
			Seed:    0,
			Workers: 0,
		},
		Render: RenderConfig{
			OutputDir: "out",
			Name:      "bloom",
			Modes:     []string{RenderIsometric, RenderPlan},
			TileWidth: 8,
			Gamma:     2.2,
		},
	}
}

// Load reads a YAML (or JSON) configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a configuration document on top of the defaults and validates it.
// JSON documents use the same snake_case keys. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// FromEnvironment returns the inline configuration, if any. The boolean is
// false when the environment carries no configuration.
func FromEnvironment() (*Config, bool, error) {
	payload := os.Getenv(EnvInlineConfig)
	if payload == "" {
		return nil, false, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", EnvInlineConfig, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// WriteDefault stores the default configuration as YAML at path.
func WriteDefault(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// LightColor is the light color scaled by the exposure divisor.
func (c *Config) LightColor() Vec3 {
	exposure := c.Scene.Exposure
	if exposure <= 0 {
		exposure = 1
	}
	l := c.Scene.Light.Color
	return Vec3{l[0] / exposure, l[1] / exposure, l[2] / exposure}
}

func (c *Config) Validate() error {
	if c.Scene.Exposure <= 0 || math.IsNaN(c.Scene.Exposure) {
		return errors.New("scene.exposure must be positive")
	}
	if c.Scene.Extent <= 0 {
		return errors.New("scene.extent must be positive")
	}
	if c.Scene.Light.Direction == (Vec3{}) {
		return errors.New("scene.light.direction cannot be the zero vector")
	}
	if c.Scene.Light.Angle < 0 {
		return errors.New("scene.light.angle cannot be negative")
	}
	if c.Generation.Workers < 0 {
		return errors.New("generation.workers cannot be negative")
	}
	if c.Render.Name == "" {
		return errors.New("render.name must be set")
	}
	if len(c.Render.Modes) > 0 && c.Render.OutputDir == "" {
		return errors.New("render.output_dir must be set when render modes are enabled")
	}
	for i, mode := range c.Render.Modes {
		switch mode {
		case RenderIsometric, RenderPlan:
		default:
			return fmt.Errorf("render.modes[%d] must be either %q or %q", i, RenderIsometric, RenderPlan)
		}
	}
	if c.Render.TileWidth < 2 || c.Render.TileWidth%2 != 0 {
		return errors.New("render.tile_width must be an even number >= 2")
	}
	if c.Render.Gamma <= 0 {
		return errors.New("render.gamma must be positive")
	}
	return nil
}
