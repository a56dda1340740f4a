// Package main is a live camera preview with selectable filters.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/config"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/photo"
	"github.com/xaionaro-go/camerafilter/pipeline"
	"github.com/xaionaro-go/camerafilter/preset"
	"github.com/xaionaro-go/camerafilter/render"
	"github.com/xaionaro-go/camerafilter/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
)

func main() {
	// parse the input

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	configPath := pflag.String("config", "", "path to a YAML config file")
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	filterID := preset.IDOriginal
	pflag.Var(&filterID, "filter", "initial filter: original, vintage, noir, bloom")
	position := types.DevicePositionBack
	pflag.Var(&position, "position", "initial camera position: back, front")
	deviceKind := pflag.String("device", config.DeviceKindSynthetic, "camera kind: synthetic, cv")
	backendKind := pflag.String("backend", config.BackendBild, "image processing backend: bild, cv")
	previewAddr := pflag.String("preview-addr", "", "an address to serve the MJPEG preview at (overrides the config)")
	photoDir := pflag.String("photo-dir", "", "a directory to save photos to (overrides the config)")
	allowPhotos := pflag.Bool("allow-photos", true, "permit saving photos")
	statsInterval := pflag.Duration("stats-interval", 0, "print statistics periodically; zero disables")
	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	flagChanged := pflag.CommandLine.Changed
	if flagChanged("log-level") {
		cfg.LogLevel = loggerLevel.String()
	}
	if flagChanged("filter") {
		cfg.Filter = filterID
	}
	if flagChanged("position") {
		cfg.Device.Position = position
	}
	if flagChanged("device") {
		cfg.Device.Kind = *deviceKind
	}
	if flagChanged("backend") {
		cfg.Backend = *backendKind
	}
	if *previewAddr != "" {
		cfg.Preview.ListenAddr = *previewAddr
	}
	if *photoDir != "" {
		cfg.Photo.Dir = *photoDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// init the context

	ctx := withLogger(context.Background(), level)
	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer func() {
		logger.Debugf(ctx, "canceling context...")
		cancelFn()
	}()
	defer belt.Flush(ctx)
	logger.Debugf(ctx, "configuration: %s", spew.Sdump(cfg))

	// build the pipeline

	provider, err := newDeviceProvider(cfg.Device)
	assert(ctx, err == nil, err)
	backend, err := newBackend(cfg.Backend)
	assert(ctx, err == nil, err)

	session := capture.NewSession(provider)
	defer func() {
		if err := closeSession(belt.WithField(ctx, "reason", "program_end"), session); err != nil {
			logger.Errorf(ctx, "unable to close the capture session: %v", err)
		}
	}()

	preview := render.NewLatestJPEG(cfg.Preview.MaxWidth, cfg.Preview.JPEGQuality)
	renderer := render.Multi{
		&render.Orientation{
			Next:          preview,
			RotateDegrees: cfg.Preview.RotateDegrees,
			MirrorFront:   cfg.Preview.MirrorFront,
		},
		render.RendererFunc(func(ctx context.Context, f *frame.Buffer) error {
			logger.Tracef(ctx, "rendered frame #%d (%s camera)", f.Sequence, f.Position)
			return nil
		}),
	}
	coordinator, err := pipeline.New(ctx, session, backend, renderer, pipeline.OptionInitialFilter(cfg.Filter))
	assert(ctx, err == nil, err)

	if err := configureCamera(ctx, session, cfg.Device.Position); err != nil {
		logger.Fatalf(ctx, "%v", err)
		return
	}
	err = coordinator.Start(ctx)
	assert(ctx, err == nil, err)
	logger.Infof(ctx, "started: %s camera, filter '%s', backend %s", session.Position(), cfg.Filter, backend)

	if cfg.Preview.ListenAddr != "" {
		server := render.NewMJPEGServer(preview)
		observability.Go(ctx, func(ctx context.Context) {
			if err := server.Serve(ctx, cfg.Preview.ListenAddr); err != nil {
				logger.Errorf(ctx, "the preview server failed: %v", err)
			}
		})
	}

	ctl := &controller{
		Coordinator: coordinator,
		Session:     session,
		Preview:     preview,
		Saver: &photo.AuthorizedSaver{
			Authorizer: photo.AuthorizerFunc(func(context.Context) bool { return *allowPhotos }),
			Saver:      photo.NewFileSaver(cfg.Photo.Dir, cfg.Photo.Format, cfg.Photo.JPEGQuality),
		},
		Output: os.Stdout,
	}

	// observe and control

	lineCh := make(chan string)
	observability.Go(ctx, func(ctx context.Context) {
		defer close(lineCh)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lineCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	})
	fmt.Print(helpText)

	var statsCh <-chan time.Time
	if *statsInterval > 0 {
		t := time.NewTicker(*statsInterval)
		defer t.Stop()
		statsCh = t.C
	}
	for {
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "finished")
			return
		case line, ok := <-lineCh:
			if !ok {
				logger.Infof(ctx, "stdin is closed")
				<-ctx.Done()
				return
			}
			err := ctl.Execute(ctx, line)
			switch {
			case err == nil:
			case errors.Is(err, errQuit):
				return
			default:
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case <-statsCh:
			if err := ctl.Execute(ctx, "stats"); err != nil {
				logger.Errorf(ctx, "unable to print statistics: %v", err)
			}
		}
	}
}

// configureCamera binds the requested camera, or the opposite one if the
// requested one is unavailable.
func configureCamera(
	ctx context.Context,
	session *capture.Session,
	position types.DevicePosition,
) error {
	err := session.Configure(ctx, position)
	if err == nil {
		return nil
	}
	if !errors.As(err, &capture.ErrDeviceUnavailable{}) {
		return err
	}
	logger.Warnf(ctx, "%v; trying the %s camera", err, position.Opposite())
	if err2 := session.Configure(ctx, position.Opposite()); err2 != nil {
		return fmt.Errorf("no camera is available: %w", errors.Join(err, err2))
	}
	return nil
}

// closeSession releases the camera even when ctx is already canceled
// (which is the usual case on SIGINT).
func closeSession(ctx context.Context, session *capture.Session) error {
	return session.Close(xcontext.DetachDone(ctx))
}
