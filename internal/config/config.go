// Package config handles x3dtool configuration loading and management.
package config

import "time"

// Config holds all tool settings.
type Config struct {
	Decoder  DecoderConfig  `yaml:"decoder" toml:"decoder"`
	Textures TexturesConfig `yaml:"textures" toml:"textures"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// DecoderConfig holds scene decoding settings.
type DecoderConfig struct {
	DirectionalScale float32 `yaml:"directional_scale" toml:"directional_scale"` // Factor applied to directional light intensity
	PointSize        float32 `yaml:"point_size" toml:"point_size"`               // Size of the default point-set material
	RootLabel        string  `yaml:"root_label" toml:"root_label"`
	FrameLights      bool    `yaml:"frame_lights" toml:"frame_lights"` // Fit directional lights to the scene after decoding
}

// TexturesConfig holds texture lookup settings.
type TexturesConfig struct {
	Roots          []string      `yaml:"roots" toml:"roots"` // Directories searched for textures
	Packs          []string      `yaml:"packs" toml:"packs"` // GRF archives, searched before roots
	Workers        int           `yaml:"workers" toml:"workers"`
	FlipY          bool          `yaml:"flip_y" toml:"flip_y"`
	ColorKey       bool          `yaml:"color_key" toml:"color_key"`
	PreloadTimeout time.Duration `yaml:"preload_timeout" toml:"preload_timeout"`
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	Color bool `yaml:"color" toml:"color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	Format  string `yaml:"format" toml:"format"` // console or json
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Decoder: DecoderConfig{
			DirectionalScale: 0.5,
			PointSize:        4,
			RootLabel:        "n0",
			FrameLights:      true,
		},
		Textures: TexturesConfig{
			Roots:          []string{"."},
			Workers:        4,
			PreloadTimeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
