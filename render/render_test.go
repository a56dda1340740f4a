package render

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/types"
)

type recordingRenderer struct {
	frames []*frame.Buffer
}

func (r *recordingRenderer) Render(_ context.Context, f *frame.Buffer) error {
	r.frames = append(r.frames, f.Clone())
	return nil
}

func solidFrame(w, h int, c color.Color) *frame.Buffer {
	f := frame.New(w, h, types.PixelFormatRGBA)
	if err := f.Fill(c); err != nil {
		panic(err)
	}
	return f
}

func pixel(t *testing.T, f *frame.Buffer, x, y int) color.RGBA {
	img, err := f.RGBA()
	require.NoError(t, err)
	return img.RGBAAt(x, y)
}

var red = color.RGBA{R: 255, A: 255}

func TestOrientationRotatesClockwise(t *testing.T) {
	ctx := context.Background()
	next := &recordingRenderer{}
	o := &Orientation{Next: next, RotateDegrees: -270}

	f := solidFrame(4, 3, color.Black)
	img, err := f.RGBA()
	require.NoError(t, err)
	img.SetRGBA(0, 2, red)
	f.Sequence = 5

	require.NoError(t, o.Render(ctx, f))
	require.Len(t, next.frames, 1)
	out := next.frames[0]
	require.Equal(t, 3, out.Width)
	require.Equal(t, 4, out.Height)
	require.Equal(t, uint64(5), out.Sequence)
	require.Equal(t, red, pixel(t, out, 0, 0))
}

func TestOrientationMirrorsFrontOnly(t *testing.T) {
	ctx := context.Background()
	next := &recordingRenderer{}
	o := &Orientation{Next: next, MirrorFront: true}

	for _, pos := range []types.DevicePosition{types.DevicePositionBack, types.DevicePositionFront} {
		f := solidFrame(4, 3, color.Black)
		f.Position = pos
		img, err := f.RGBA()
		require.NoError(t, err)
		img.SetRGBA(0, 0, red)
		require.NoError(t, o.Render(ctx, f))
	}
	require.Len(t, next.frames, 2)
	require.Equal(t, red, pixel(t, next.frames[0], 0, 0))
	require.Equal(t, red, pixel(t, next.frames[1], 3, 0))
}

func TestLatestJPEG(t *testing.T) {
	ctx := context.Background()
	l := NewLatestJPEG(8, 90)
	jpeg, _ := l.Latest()
	require.Nil(t, jpeg)

	changeCh := l.ChangeChan()
	f := solidFrame(16, 12, red)
	f.Sequence = 3
	require.NoError(t, l.Render(ctx, f))

	select {
	case <-changeCh:
	default:
		t.Fatal("the change channel is expected to be closed")
	}

	jpeg, seq := l.Latest()
	require.Equal(t, uint64(3), seq)
	img, err := imaging.Decode(bytes.NewReader(jpeg))
	require.NoError(t, err)
	require.Equal(t, 8, img.Bounds().Dx())
	require.Equal(t, 6, img.Bounds().Dy())
	require.Equal(t, uint64(1), l.Encoded.ToStats().Count)
}

func TestMultiRenderer(t *testing.T) {
	ctx := context.Background()
	a, b := &recordingRenderer{}, &recordingRenderer{}
	require.NoError(t, Multi{a, nil, b, Discard{}}.Render(ctx, solidFrame(2, 2, red)))
	require.Len(t, a.frames, 1)
	require.Len(t, b.frames, 1)
}

func TestMJPEGServer(t *testing.T) {
	ctx := context.Background()
	l := NewLatestJPEG(0, 0)
	srv := httptest.NewServer(NewMJPEGServer(l).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + PathSnapshot)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, l.Render(ctx, solidFrame(4, 3, red)))

	resp, err = http.Get(srv.URL + PathSnapshot)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	img, err := imaging.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 4, img.Bounds().Dx())

	streamCtx, cancelFn := context.WithTimeout(ctx, 5*time.Second)
	defer cancelFn()
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, srv.URL+PathStream, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/x-mixed-replace", mediaType)
	mr := multipart.NewReader(resp.Body, params["boundary"])
	part, err := mr.NextPart()
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))
	img, err = imaging.Decode(part)
	require.NoError(t, err)
	require.Equal(t, 3, img.Bounds().Dy())
}
