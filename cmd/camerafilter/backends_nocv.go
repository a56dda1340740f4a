//go:build !with_cv
// +build !with_cv

package main

import (
	"fmt"

	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/capture/device/synthetic"
	"github.com/xaionaro-go/camerafilter/config"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/imageprocessor/bildprocessor"
)

func newDeviceProvider(cfg config.DeviceConfig) (capture.DeviceProvider, error) {
	switch cfg.Kind {
	case config.DeviceKindSynthetic:
		return synthetic.NewProvider(cfg.Resolution, cfg.FPS), nil
	default:
		return nil, fmt.Errorf("device kind '%s' is not supported by this build (rebuild with -tags with_cv)", cfg.Kind)
	}
}

func newBackend(kind string) (imageprocessor.Backend, error) {
	switch kind {
	case config.BackendBild:
		return bildprocessor.New(), nil
	default:
		return nil, fmt.Errorf("backend '%s' is not supported by this build (rebuild with -tags with_cv)", kind)
	}
}
