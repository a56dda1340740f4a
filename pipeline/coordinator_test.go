package pipeline

import (
	"context"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/capture/device/synthetic"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/imageprocessor/bildprocessor"
	"github.com/xaionaro-go/camerafilter/preset"
	"github.com/xaionaro-go/camerafilter/types"
)

type dummySession struct {
	locker      sync.Mutex
	callback    capture.FrameCallback
	state       capture.State
	configuring bool
	position   types.DevicePosition
	startCount int
	stopCount  int
}

var _ CaptureSession = (*dummySession)(nil)

func newDummySession() *dummySession {
	return &dummySession{
		state:    capture.StateRunning,
		position: types.DevicePositionBack,
	}
}

func (s *dummySession) OnFrame(cb capture.FrameCallback) {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.callback = cb
}

func (s *dummySession) Start(context.Context) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.startCount++
	s.state = capture.StateRunning
	return nil
}

func (s *dummySession) Stop(context.Context) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.stopCount++
	s.state = capture.StateStopped
	return nil
}

func (s *dummySession) SwitchPosition(context.Context) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.position = s.position.Opposite()
	return nil
}

func (s *dummySession) Position() types.DevicePosition {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.position
}

func (s *dummySession) State() capture.State {
	s.locker.Lock()
	defer s.locker.Unlock()
	if s.configuring {
		return capture.StateConfiguring
	}
	return s.state
}

func (s *dummySession) IsRunning() bool {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.state == capture.StateRunning
}

func (s *dummySession) SetConfiguring(v bool) {
	s.locker.Lock()
	defer s.locker.Unlock()
	s.configuring = v
}

func (s *dummySession) Deliver(ctx context.Context, f *frame.Buffer) {
	s.locker.Lock()
	cb := s.callback
	s.locker.Unlock()
	cb(ctx, f)
}

type recordingRenderer struct {
	locker sync.Mutex
	frames []*frame.Buffer
}

func (r *recordingRenderer) Render(_ context.Context, f *frame.Buffer) error {
	r.locker.Lock()
	defer r.locker.Unlock()
	r.frames = append(r.frames, f.Clone())
	return nil
}

func (r *recordingRenderer) Frames() []*frame.Buffer {
	r.locker.Lock()
	defer r.locker.Unlock()
	return append([]*frame.Buffer(nil), r.frames...)
}

type unavailableBackend struct{}

func (unavailableBackend) String() string { return "unavailable" }
func (unavailableBackend) NewOperation(
	_ context.Context,
	kind imageprocessor.Kind,
	_ imageprocessor.Params,
) (imageprocessor.Operation, error) {
	return nil, imageprocessor.ErrFilterUnavailable{Kind: kind, Backend: "unavailable"}
}

func gradientFrame(w, h int, seq uint64) *frame.Buffer {
	f := frame.New(w, h, types.PixelFormatRGBA)
	f.Sequence = seq
	f.Position = types.DevicePositionBack
	img, err := f.RGBA()
	if err != nil {
		panic(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(60 * x), G: uint8(80 * y), B: 30, A: 255})
		}
	}
	return f
}

func newTestCoordinator(t *testing.T, opts ...Option) (*Coordinator, *dummySession, *recordingRenderer) {
	ctx := context.Background()
	session := newDummySession()
	renderer := &recordingRenderer{}
	c, err := New(ctx, session, bildprocessor.New(bildprocessor.OptionRandSeed(1)), renderer, opts...)
	require.NoError(t, err)
	return c, session, renderer
}

func TestTakePhotoBeforeAnyFrame(t *testing.T) {
	ctx := context.Background()
	c, session, _ := newTestCoordinator(t)

	_, err := c.TakePhoto(ctx)
	require.ErrorAs(t, err, &ErrNoFrameAvailable{})
	require.Equal(t, 1, session.stopCount)
	require.Equal(t, 1, session.startCount)
	require.Equal(t, capture.StateRunning, session.State())
}

func TestTakePhotoWithoutFrameDuringSwitch(t *testing.T) {
	ctx := context.Background()
	c, session, _ := newTestCoordinator(t)
	session.SetConfiguring(true)

	_, err := c.TakePhoto(ctx)
	require.ErrorAs(t, err, &ErrNoFrameAvailable{})
	require.Equal(t, 1, session.stopCount)
	require.Equal(t, 1, session.startCount)

	session.SetConfiguring(false)
	require.Equal(t, capture.StateRunning, session.State())
}

func TestTakePhotoReturnsLastFrame(t *testing.T) {
	ctx := context.Background()
	c, session, renderer := newTestCoordinator(t)

	in := gradientFrame(4, 3, 1)
	session.Deliver(ctx, in.Clone())

	photo, err := c.TakePhoto(ctx)
	require.NoError(t, err)
	require.True(t, in.Equal(photo))
	require.Equal(t, capture.StateStopped, session.State())
	require.Len(t, renderer.Frames(), 1)

	photo.Pix[0]++
	again, err := c.TakePhoto(ctx)
	require.NoError(t, err)
	require.True(t, in.Equal(again))
	require.Equal(t, uint64(2), c.Counters.Photos.Load())

	require.NoError(t, c.ResumePreview(ctx))
	require.Equal(t, capture.StateRunning, session.State())
}

func TestSetFilterAffectsNextFrame(t *testing.T) {
	ctx := context.Background()
	c, session, renderer := newTestCoordinator(t)

	session.Deliver(ctx, gradientFrame(4, 3, 1))
	entry, err := c.SetFilter(ctx, preset.IDNoir)
	require.NoError(t, err)
	require.Equal(t, preset.IDNoir, entry.ID)
	require.Equal(t, preset.IDNoir, c.CurrentFilter())

	frames := renderer.Frames()
	require.Len(t, frames, 1)
	require.True(t, gradientFrame(4, 3, 1).Equal(frames[0]))

	session.Deliver(ctx, gradientFrame(4, 3, 2))
	frames = renderer.Frames()
	require.Len(t, frames, 2)
	img, err := frames[1].RGBA()
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			p := img.RGBAAt(x, y)
			require.Equal(t, p.R, p.G)
			require.Equal(t, p.G, p.B)
		}
	}

	_, err = c.SetFilter(ctx, preset.ID(100))
	require.ErrorAs(t, err, &preset.ErrUnknownID{})
	require.Equal(t, preset.IDNoir, c.CurrentFilter())
}

func TestFilterFailureDropsFrame(t *testing.T) {
	ctx := context.Background()
	session := newDummySession()
	renderer := &recordingRenderer{}
	c, err := New(ctx, session, unavailableBackend{}, renderer, OptionInitialFilter(preset.IDVintage))
	require.NoError(t, err)

	_, err = c.OnFrame(ctx, gradientFrame(4, 3, 1))
	require.ErrorAs(t, err, &imageprocessor.ErrFilterUnavailable{})
	session.Deliver(ctx, gradientFrame(4, 3, 2))
	require.Empty(t, renderer.Frames())
	require.Equal(t, uint64(2), c.Counters.Failed.Load())

	_, err = c.TakePhoto(ctx)
	require.ErrorAs(t, err, &ErrNoFrameAvailable{})

	// the pipeline keeps going with the next frames
	_, err = c.SetFilter(ctx, preset.IDOriginal)
	require.NoError(t, err)
	session.Deliver(ctx, gradientFrame(4, 3, 3))
	frames := renderer.Frames()
	require.Len(t, frames, 1)
	require.Equal(t, uint64(3), frames[0].Sequence)
}

func TestRenderOrder(t *testing.T) {
	ctx := context.Background()
	c, session, renderer := newTestCoordinator(t, OptionInitialFilter(preset.IDBloom))
	for seq := uint64(1); seq <= 3; seq++ {
		session.Deliver(ctx, gradientFrame(4, 3, seq))
	}
	var seqs []uint64
	for _, f := range renderer.Frames() {
		seqs = append(seqs, f.Sequence)
		require.Equal(t, 4, f.Width)
		require.Equal(t, 3, f.Height)
	}
	require.Equal(t, []uint64{1, 2, 3}, seqs)
	require.Equal(t, uint64(3), c.GetStats().Rendered)
	require.Equal(t, "bloom", c.GetStats().Filter)
}

func TestSwitchCamera(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCoordinator(t)
	pos, err := c.SwitchCamera(ctx)
	require.NoError(t, err)
	require.Equal(t, types.DevicePositionFront, pos)
	require.Equal(t, types.DevicePositionFront, c.Position())
}

func TestWithCaptureSession(t *testing.T) {
	ctx := context.Background()
	provider := synthetic.NewProvider(types.Resolution{Width: 16, Height: 12}, types.Rational{Num: 100, Den: 1})
	session := capture.NewSession(provider)
	defer session.Close(ctx)
	renderer := &recordingRenderer{}

	c, err := New(ctx, session, bildprocessor.New(), renderer, OptionInitialFilter(preset.IDVintage))
	require.NoError(t, err)
	require.NoError(t, session.Configure(ctx, types.DevicePositionBack))
	require.NoError(t, c.Start(ctx))

	require.Eventually(t, func() bool {
		return c.Counters.Processed.Load() > 0
	}, 5*time.Second, 10*time.Millisecond)

	pos, err := c.SwitchCamera(ctx)
	require.NoError(t, err)
	require.Equal(t, types.DevicePositionFront, pos)
	require.Eventually(t, func() bool {
		frames := renderer.Frames()
		return len(frames) > 0 && frames[len(frames)-1].Position == types.DevicePositionFront
	}, 5*time.Second, 10*time.Millisecond)

	photo, err := c.TakePhoto(ctx)
	require.NoError(t, err)
	require.Equal(t, 16, photo.Width)
	require.Equal(t, 12, photo.Height)
	require.Equal(t, capture.StateStopped, session.State())

	// nothing is delivered while stopped
	rendered := c.Counters.Rendered.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, rendered, c.Counters.Rendered.Load())
	again, err := c.TakePhoto(ctx)
	require.NoError(t, err)
	require.True(t, photo.Equal(again))

	require.NoError(t, c.ResumePreview(ctx))
	require.Eventually(t, func() bool {
		return c.Counters.Rendered.Load() > rendered
	}, 5*time.Second, 10*time.Millisecond)
}
