package config

import (
	"fmt"

	"github.com/xaionaro-go/camerafilter/logger"
)

func (cfg *Config) Validate() error {
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch cfg.Device.Kind {
	case DeviceKindSynthetic, DeviceKindCV:
	default:
		return fmt.Errorf("device.kind must be one of %q, %q; got %q", DeviceKindSynthetic, DeviceKindCV, cfg.Device.Kind)
	}
	if !cfg.Device.Position.IsValid() {
		return fmt.Errorf("device.position must be 'back' or 'front'")
	}
	if cfg.Device.Resolution.IsZero() {
		return fmt.Errorf("device.width and device.height must be > 0")
	}
	if cfg.Device.FPS.Float64() <= 0 {
		return fmt.Errorf("device.fps must be > 0")
	}

	if !cfg.Filter.IsValid() {
		return fmt.Errorf("unknown filter: %s", cfg.Filter)
	}

	switch cfg.Backend {
	case BackendBild, BackendCV:
	default:
		return fmt.Errorf("backend must be one of %q, %q; got %q", BackendBild, BackendCV, cfg.Backend)
	}

	if cfg.Preview.MaxWidth < 0 {
		return fmt.Errorf("preview.max_width must not be negative")
	}
	if q := cfg.Preview.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("preview.jpeg_quality must be within [1, 100]")
	}

	if cfg.Photo.Dir == "" {
		return fmt.Errorf("photo.dir is required")
	}
	if cfg.Photo.Format.Extension() == "" {
		return fmt.Errorf("photo.format must be 'jpeg' or 'png'")
	}
	if q := cfg.Photo.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("photo.jpeg_quality must be within [1, 100]")
	}
	return nil
}
