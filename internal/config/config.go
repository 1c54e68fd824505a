// Package config handles loading and saving the scene configuration.
package config

// Config holds all settings of the water and sky scene.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Water    WaterConfig    `yaml:"water"`
	Sky      SkyConfig      `yaml:"sky"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width            int  `yaml:"width"`
	Height           int  `yaml:"height"`
	Fullscreen       bool `yaml:"fullscreen"`
	VSync            bool `yaml:"vsync"`
	Shadows          bool `yaml:"shadows"`
	ShadowResolution int  `yaml:"shadow_resolution"`
}

// CameraConfig holds the main camera lens and its orbit.
type CameraConfig struct {
	FovDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Position   [3]float32 `yaml:"position,flow"`
	Target     [3]float32 `yaml:"target,flow"`
	OrbitSpeed float32    `yaml:"orbit_speed"` // radians per second, 0 holds still
}

// WaterConfig holds the water surface settings.
type WaterConfig struct {
	TextureWidth    int     `yaml:"texture_width"`
	TextureHeight   int     `yaml:"texture_height"`
	ClipBias        float32 `yaml:"clip_bias"`
	Alpha           float32 `yaml:"alpha"`
	DistortionScale float32 `yaml:"distortion_scale"`
	Size            float32 `yaml:"size"`
	SunColor        Color   `yaml:"sun_color"`
	WaterColor      Color   `yaml:"water_color"`
	TimeStep        float32 `yaml:"time_step"` // seconds per frame, 0 uses the frame delta
	Extent          float32 `yaml:"extent"`
	Level           float32 `yaml:"level"`
	NormalMap       string  `yaml:"normal_map"` // empty selects a procedural map
	ReceiveShadows  bool    `yaml:"receive_shadows"`
}

// SkyConfig holds the scattering coefficients and sun placement.
type SkyConfig struct {
	Turbidity       float32 `yaml:"turbidity"`
	Rayleigh        float32 `yaml:"rayleigh"`
	MieCoefficient  float32 `yaml:"mie_coefficient"`
	MieDirectionalG float32 `yaml:"mie_directional_g"`
	Luminance       float32 `yaml:"luminance"`
	Scale           float32 `yaml:"scale"`
	Inclination     float32 `yaml:"inclination"`
	Azimuth         float32 `yaml:"azimuth"`
	Distance        float32 `yaml:"distance"`
	DayLength       float32 `yaml:"day_length"` // seconds, 0 freezes the sun
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the evening-sea scene.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			Shadows:          false,
			ShadowResolution: 2048,
		},
		Camera: CameraConfig{
			FovDegrees: 55,
			Near:       1,
			Far:        20000,
			Position:   [3]float32{30, 30, 100},
			Target:     [3]float32{0, 0, 0},
			OrbitSpeed: 0,
		},
		Water: WaterConfig{
			TextureWidth:    512,
			TextureHeight:   512,
			ClipBias:        0,
			Alpha:           1,
			DistortionScale: 3.7,
			Size:            1,
			SunColor:        0xFFFFFF,
			WaterColor:      0x001E0F,
			TimeStep:        1.0 / 60,
			Extent:          10000,
			Level:           0,
		},
		Sky: SkyConfig{
			Turbidity:       10,
			Rayleigh:        2,
			MieCoefficient:  0.005,
			MieDirectionalG: 0.8,
			Luminance:       1,
			Scale:           10000,
			Inclination:     0.49,
			Azimuth:         0.205,
			Distance:        400,
			DayLength:       0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
