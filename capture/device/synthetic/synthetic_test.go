package synthetic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/types"
)

func TestProvider(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(types.Resolution{Width: 4, Height: 3}, types.Rational{Num: 100, Den: 1})
	p.Positions = []types.DevicePosition{types.DevicePositionBack}

	_, err := p.OpenDevice(ctx, types.DevicePositionFront)
	require.ErrorAs(t, err, &capture.ErrDeviceUnavailable{})

	d, err := p.OpenDevice(ctx, types.DevicePositionBack)
	require.NoError(t, err)
	require.Equal(t, types.DevicePositionBack, d.Position())

	f0, err := d.ReadFrame(ctx)
	require.NoError(t, err)
	f1, err := d.ReadFrame(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, f1.Width)
	require.Equal(t, 3, f1.Height)
	require.Equal(t, types.DevicePositionBack, f1.Position)
	require.Equal(t, f0.Sequence+1, f1.Sequence)
	require.False(t, f0.Equal(f1))
	f0.Release()
	f1.Release()

	require.NoError(t, d.Close(ctx))
	_, err = d.ReadFrame(ctx)
	require.Error(t, err)
}

func TestReadFrameUnblocksOnClose(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(types.Resolution{Width: 2, Height: 2}, types.Rational{Num: 1, Den: 60})
	d, err := p.OpenDevice(ctx, types.DevicePositionFront)
	require.NoError(t, err)
	_, err = d.ReadFrame(ctx)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := d.ReadFrame(ctx)
		errCh <- err
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, d.Close(ctx))
	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("ReadFrame did not return after Close")
	}
}

func TestSessionWithSyntheticCamera(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(types.Resolution{Width: 8, Height: 6}, types.Rational{Num: 200, Den: 1})
	s := capture.NewSession(p)
	defer s.Close(ctx)

	positions := make(chan types.DevicePosition, 1000)
	s.OnFrame(func(ctx context.Context, f *frame.Buffer) {
		defer f.Release()
		positions <- f.Position
	})
	require.NoError(t, s.Configure(ctx, types.DevicePositionBack))
	require.NoError(t, s.Start(ctx))
	require.Equal(t, types.DevicePositionBack, <-positions)

	require.NoError(t, s.SwitchPosition(ctx))
	timeout := time.After(2 * time.Second)
	for front := false; !front; {
		select {
		case pos := <-positions:
			front = pos == types.DevicePositionFront
		case <-timeout:
			t.Fatal("no frame from the front camera")
		}
	}
	require.NoError(t, s.Stop(ctx))
	close(positions)
	for pos := range positions {
		require.Equal(t, types.DevicePositionFront, pos)
	}
}
