package config

import "flag"

// Flags are the command-line overrides shared by the commands.
type Flags struct {
	config     *string
	debug      *bool
	windowed   *bool
	fullscreen *bool
	width      *int
	height     *int
	shadows    *bool
	normalMap  *string
	dayLength  *float64
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:     fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
		windowed:   fs.Bool("windowed", false, "Run in windowed mode"),
		fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		width:      fs.Int("width", 0, "Window width"),
		height:     fs.Int("height", 0, "Window height"),
		shadows:    fs.Bool("shadows", false, "Enable the shadow map"),
		normalMap:  fs.String("normals", "", "Water normal map image"),
		dayLength:  fs.Float64("day", 0, "Seconds per day/night cycle"),
	}
}

// ConfigPath returns the explicit config path given with -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply copies flag overrides into cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.windowed {
		cfg.Graphics.Fullscreen = false
	}
	if *f.fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *f.width > 0 {
		cfg.Graphics.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Graphics.Height = *f.height
	}
	if *f.shadows {
		cfg.Graphics.Shadows = true
	}
	if *f.normalMap != "" {
		cfg.Water.NormalMap = *f.normalMap
	}
	if *f.dayLength > 0 {
		cfg.Sky.DayLength = float32(*f.dayLength)
	}
}
