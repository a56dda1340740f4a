// Package config defines the camerafilter configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/xaionaro-go/camerafilter/photo"
	"github.com/xaionaro-go/camerafilter/preset"
	"github.com/xaionaro-go/camerafilter/types"
	"gopkg.in/yaml.v3"
)

const (
	DeviceKindSynthetic = "synthetic"
	DeviceKindCV        = "cv"

	BackendBild = "bild"
	BackendCV   = "cv"
)

type Config struct {
	LogLevel string        `yaml:"log_level"`
	Device   DeviceConfig  `yaml:"device"`
	Filter   preset.ID     `yaml:"filter"`
	Backend  string        `yaml:"backend"` // bild, cv
	Preview  PreviewConfig `yaml:"preview"`
	Photo    PhotoConfig   `yaml:"photo"`
}

type DeviceConfig struct {
	Kind             string               `yaml:"kind"` // synthetic, cv
	Position         types.DevicePosition `yaml:"position"`
	types.Resolution `yaml:",inline"`
	FPS              types.Rational `yaml:"fps"`
}

type PreviewConfig struct {
	ListenAddr    string  `yaml:"listen_addr"` // empty disables the HTTP preview
	RotateDegrees float64 `yaml:"rotate_degs"` // clockwise
	MirrorFront   bool    `yaml:"mirror_front"`
	MaxWidth      int     `yaml:"max_width"`
	JPEGQuality   int     `yaml:"jpeg_quality"`
}

type PhotoConfig struct {
	Dir         string       `yaml:"dir"`
	Format      photo.Format `yaml:"format"`
	JPEGQuality int          `yaml:"jpeg_quality"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Device: DeviceConfig{
			Kind:       DeviceKindSynthetic,
			Position:   types.DevicePositionBack,
			Resolution: types.Resolution{Width: 640, Height: 480},
			FPS:        types.Rational{Num: 30, Den: 1},
		},
		Filter:  preset.IDOriginal,
		Backend: BackendBild,
		Preview: PreviewConfig{
			ListenAddr:  "127.0.0.1:8080",
			MirrorFront: true,
			MaxWidth:    1280,
			JPEGQuality: 80,
		},
		Photo: PhotoConfig{
			Dir:         "photos",
			Format:      photo.FormatJPEG,
			JPEGQuality: photo.DefaultJPEGQuality,
		},
	}
}

// Load reads the YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file '%s': %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (cfg Config) Bytes() ([]byte, error) {
	return yaml.Marshal(cfg)
}
