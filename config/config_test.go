package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/photo"
	"github.com/xaionaro-go/camerafilter/preset"
	"github.com/xaionaro-go/camerafilter/types"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camerafilter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
device:
  position: front
  width: 320
  height: 240
  fps: 30000/1001
filter: noir
preview:
  rotate_degs: -90
photo:
  format: png
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, DeviceKindSynthetic, cfg.Device.Kind)
	require.Equal(t, types.DevicePositionFront, cfg.Device.Position)
	require.Equal(t, types.Resolution{Width: 320, Height: 240}, cfg.Device.Resolution)
	require.Equal(t, types.Rational{Num: 30000, Den: 1001}, cfg.Device.FPS)
	require.Equal(t, preset.IDNoir, cfg.Filter)
	require.Equal(t, -90.0, cfg.Preview.RotateDegrees)
	require.True(t, cfg.Preview.MirrorFront)
	require.Equal(t, photo.FormatPNG, cfg.Photo.Format)
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"filter":   "filter: sketch",
		"position": "device:\n  position: left",
		"kind":     "device:\n  kind: v4l2",
		"backend":  "backend: gpu",
		"fps":      "device:\n  fps: 0/1",
		"quality":  "photo:\n  jpeg_quality: 101",
		"level":    "log_level: loud",
	} {
		_, err := Parse([]byte(doc))
		require.Error(t, err, name)
	}
}

func TestRoundTrip(t *testing.T) {
	b, err := Default().Bytes()
	require.NoError(t, err)
	cfg, err := Parse(b)
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
}
