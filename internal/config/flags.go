package config

import (
	"flag"
	"strconv"

	"github.com/Faultbox/heightforge/internal/noise"
)

// optionalInt64 is an int64 flag that records whether it was set, so 0 stays a valid value.
type optionalInt64 struct {
	value int64
	set   bool
}

func (o *optionalInt64) String() string {
	if !o.set {
		return ""
	}
	return strconv.FormatInt(o.value, 10)
}

func (o *optionalInt64) Set(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagOut      = flag.String("out", "", "Export path for the OBJ file")
	flagNoise    = flag.String("noise", "", "Noise backend (perlin, simplex)")
	flagGrid     = flag.Int("grid", 0, "Grid size (vertices per side)")
	flagTextures = flag.String("textures", "", "Texture directory")
	flagNoExport = flag.Bool("no-export", false, "Skip export on exit")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagSeed     optionalInt64
)

func init() {
	flag.Var(&flagSeed, "seed", "Noise seed")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Export.Path = *flagOut
	}
	if *flagNoise != "" {
		cfg.Terrain.Noise = noise.Kind(*flagNoise)
	}
	if *flagGrid > 0 {
		cfg.Terrain.Width = *flagGrid
		cfg.Terrain.Height = *flagGrid
	}
	if *flagTextures != "" {
		cfg.Textures.Dir = *flagTextures
	}
	if *flagNoExport {
		cfg.Export.Enabled = false
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if flagSeed.set {
		cfg.Terrain.Seed = flagSeed.value
	}
}
