//go:build with_cv
// +build with_cv

package main

import (
	"fmt"

	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/capture/device/cvcamera"
	"github.com/xaionaro-go/camerafilter/capture/device/synthetic"
	"github.com/xaionaro-go/camerafilter/config"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/imageprocessor/bildprocessor"
	"github.com/xaionaro-go/camerafilter/imageprocessor/cvprocessor"
	"github.com/xaionaro-go/camerafilter/imageprocessor/fallback"
)

func newDeviceProvider(cfg config.DeviceConfig) (capture.DeviceProvider, error) {
	switch cfg.Kind {
	case config.DeviceKindSynthetic:
		return synthetic.NewProvider(cfg.Resolution, cfg.FPS), nil
	case config.DeviceKindCV:
		return cvcamera.NewProvider(cfg.Resolution, cfg.FPS), nil
	default:
		return nil, fmt.Errorf("unknown device kind '%s'", cfg.Kind)
	}
}

func newBackend(kind string) (imageprocessor.Backend, error) {
	switch kind {
	case config.BackendBild:
		return bildprocessor.New(), nil
	case config.BackendCV:
		// OpenCV covers only some kinds, the rest is done by bild
		return fallback.New(cvprocessor.New(), bildprocessor.New()), nil
	default:
		return nil, fmt.Errorf("unknown backend '%s'", kind)
	}
}
