// Package config handles terrain studio configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/heightforge/internal/logger"
	"github.com/Faultbox/heightforge/internal/noise"
	"github.com/Faultbox/heightforge/internal/terrain"
)

// Config holds all settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Textures TexturesConfig `yaml:"textures"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds the initial generation parameters.
type TerrainConfig struct {
	Width       int        `yaml:"width"`  // grid columns
	Height      int        `yaml:"height"` // grid rows
	Scale       float64    `yaml:"scale"`
	Octaves     int        `yaml:"octaves"`
	Persistence float64    `yaml:"persistence"`
	Lacunarity  float64    `yaml:"lacunarity"`
	ScaleFactor float64    `yaml:"scale_factor"`
	Amplitude   float64    `yaml:"amplitude"`
	Seed        int64      `yaml:"seed"`
	Noise       noise.Kind `yaml:"noise"`
	Workers     int        `yaml:"workers"` // 0 = all CPUs
	Async       bool       `yaml:"async"`   // rebuild off the render loop
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// CameraConfig holds the initial orbit camera.
type CameraConfig struct {
	Distance   float32 `yaml:"distance"`
	RotationX  float32 `yaml:"rotation_x"` // pitch, degrees
	RotationY  float32 `yaml:"rotation_y"` // yaw, degrees
	RotateStep float32 `yaml:"rotate_step"`
	ZoomStep   float32 `yaml:"zoom_step"`
}

// TexturesConfig locates band textures.
type TexturesConfig struct {
	Dir    string `yaml:"dir"`
	Source string `yaml:"source"` // optional go-getter URL fetched into Dir
}

// ExportConfig controls export on exit.
type ExportConfig struct {
	Path        string `yaml:"path"`
	Enabled     bool   `yaml:"enabled"`
	WriteParams bool   `yaml:"write_params"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := terrain.DefaultParams()
	return &Config{
		Terrain: TerrainConfig{
			Width:       p.Width,
			Height:      p.Height,
			Scale:       p.Scale,
			Octaves:     p.Octaves,
			Persistence: p.Persistence,
			Lacunarity:  p.Lacunarity,
			ScaleFactor: p.ScaleFactor,
			Amplitude:   p.Amplitude,
			Noise:       p.Noise,
		},
		Graphics: GraphicsConfig{
			Width:    600,
			Height:   600,
			VSync:    true,
			FPSLimit: 30,
		},
		Camera: CameraConfig{
			Distance:   500,
			RotationX:  45,
			RotationY:  45,
			RotateStep: 2,
			ZoomStep:   20,
		},
		Textures: TexturesConfig{
			Dir: ".",
		},
		Export: ExportConfig{
			Path:    "out/terrain.obj",
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TerrainParams converts the terrain section into generation parameters.
func (c *Config) TerrainParams() terrain.Params {
	t := c.Terrain
	return terrain.Params{
		Width:       t.Width,
		Height:      t.Height,
		Scale:       t.Scale,
		Octaves:     t.Octaves,
		Persistence: t.Persistence,
		Lacunarity:  t.Lacunarity,
		ScaleFactor: t.ScaleFactor,
		Amplitude:   t.Amplitude,
		Seed:        t.Seed,
		Noise:       t.Noise,
		Workers:     t.Workers,
	}
}

// SetTerrainParams stores p back into the terrain section, e.g. after Apply.
func (c *Config) SetTerrainParams(p terrain.Params) {
	c.Terrain.Width = p.Width
	c.Terrain.Height = p.Height
	c.Terrain.Scale = p.Scale
	c.Terrain.Octaves = p.Octaves
	c.Terrain.Persistence = p.Persistence
	c.Terrain.Lacunarity = p.Lacunarity
	c.Terrain.ScaleFactor = p.ScaleFactor
	c.Terrain.Amplitude = p.Amplitude
	c.Terrain.Seed = p.Seed
	c.Terrain.Noise = p.Noise
	c.Terrain.Workers = p.Workers
}

// Validate reports every out-of-domain setting.
func (c *Config) Validate() error {
	var errs []error
	if err := c.TerrainParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("terrain: %w", err))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: fps_limit must be >= 0, got %d", c.Graphics.FPSLimit))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera: distance must be positive, got %v", c.Camera.Distance))
	}
	if c.Export.Enabled && c.Export.Path == "" {
		errs = append(errs, errors.New("export: path is required when export is enabled"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}
