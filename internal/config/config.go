package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all engine configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Rays     RayConfig      `yaml:"rays"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Terminal TerminalConfig `yaml:"terminal"`
	SSH      SSHConfig      `yaml:"ssh"`
	Stream   StreamConfig   `yaml:"stream"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	ShowFPS      bool   `yaml:"show_fps"`

	// DetailedStats keeps running frame and cast averages for the exit log
	DetailedStats bool `yaml:"detailed_stats"`
}

type WorldConfig struct {
	BlockSize int    `yaml:"block_size"`
	MapFile   string `yaml:"map_file"`
	TileFile  string `yaml:"tile_file"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	// ExclusiveTranslateRotate applies at most one command per tick
	// (forward, backward, left, right in that priority).
	ExclusiveTranslateRotate bool `yaml:"exclusive_translate_rotate"`
}

type RayConfig struct {
	RayCount int  `yaml:"ray_count"`
	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers"` // 0 means CPU count
}

type GraphicsConfig struct {
	TextureSize int     `yaml:"texture_size"`
	TexturesDir string  `yaml:"textures_dir"`
	Sky         [3]int  `yaml:"sky"`
	Ground      [3]int  `yaml:"ground"`
	FloorPass   bool    `yaml:"floor_pass"`
	ShowMap     bool    `yaml:"show_map"`
	MapScale    float64 `yaml:"map_scale"` // minimap pixels per world unit
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // beep/effects.Volume exponent, 0 = unchanged
}

type TerminalConfig struct {
	FPS int `yaml:"fps"`
}

type SSHConfig struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

type StreamConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the built-in configuration. LoadConfig unmarshals on
// top of it so a config file only needs the values it changes.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:   1024,
			ScreenHeight:  512,
			WindowTitle:   "YA Raycaster",
			DetailedStats: true,
		},
		World: WorldConfig{
			BlockSize: 64,
		},
		Movement: MovementConfig{
			MoveSpeed:                4,
			RotationSpeed:            4,
			ExclusiveTranslateRotate: true,
		},
		Rays: RayConfig{
			RayCount: 60,
		},
		Graphics: GraphicsConfig{
			TextureSize: 64,
			TexturesDir: "assets/textures",
			Sky:         [3]int{0, 0, 30},
			Ground:      [3]int{40, 40, 40},
			ShowMap:     true,
			MapScale:    0.25,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Terminal: TerminalConfig{
			FPS: 30,
		},
		SSH: SSHConfig{
			Addr:    ":2222",
			HostKey: "host_key",
		},
		Stream: StreamConfig{
			Addr: ":8080",
			Path: "/frames",
		},
	}
}

// LoadConfig loads the configuration from a yaml file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects configurations the engine cannot run with. These are the
// only fatal conditions; nothing is re-checked per frame.
func (c *Config) Validate() error {
	switch {
	case c.Rays.RayCount <= 0:
		return fmt.Errorf("%w: ray_count must be positive, got %d", ErrInvalidConfig, c.Rays.RayCount)
	case c.Rays.RayCount%2 != 0:
		return fmt.Errorf("%w: ray_count must be even, got %d", ErrInvalidConfig, c.Rays.RayCount)
	case c.World.BlockSize <= 0:
		return fmt.Errorf("%w: block_size must be positive, got %d", ErrInvalidConfig, c.World.BlockSize)
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size must be positive, got %dx%d", ErrInvalidConfig,
			c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Graphics.TextureSize <= 0:
		return fmt.Errorf("%w: texture_size must be positive, got %d", ErrInvalidConfig, c.Graphics.TextureSize)
	case c.Movement.MoveSpeed < 0 || c.Movement.RotationSpeed < 0:
		return fmt.Errorf("%w: movement speeds must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetBlockSize() float64 {
	return float64(c.World.BlockSize)
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetRayCount() int {
	return c.Rays.RayCount
}

// GetStripWidth is the on-screen width of one ray column.
func (c *Config) GetStripWidth() int {
	return max(1, c.Display.ScreenWidth/c.Rays.RayCount)
}

// GetFOV returns the field of view in degrees. Rays are one degree apart, so
// it always equals the ray count.
func (c *Config) GetFOV() float64 {
	return float64(c.Rays.RayCount)
}
