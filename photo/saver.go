// Package photo persists still photos taken from the pipeline.
package photo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/observability"
)

const (
	DefaultJPEGQuality = 92
)

// Saver persists a photo and returns where it was stored.
type Saver interface {
	Save(ctx context.Context, f *frame.Buffer) (string, error)
}

// FileSaver encodes photos into files in Dir.
type FileSaver struct {
	Dir         string
	Format      Format
	JPEGQuality int
}

var _ Saver = (*FileSaver)(nil)

func NewFileSaver(dir string, format Format, jpegQuality int) *FileSaver {
	if jpegQuality <= 0 {
		jpegQuality = DefaultJPEGQuality
	}
	return &FileSaver{
		Dir:         dir,
		Format:      format,
		JPEGQuality: jpegQuality,
	}
}

func (s *FileSaver) String() string {
	return fmt.Sprintf("FileSaver(%s, %s)", s.Dir, s.Format)
}

// FileName returns the name for a photo taken at the given time.
func (s *FileSaver) FileName(ts time.Time) string {
	return fmt.Sprintf("photo-%s-%s%s", ts.UTC().Format("20060102-150405"), uuid.New().String()[:8], s.Format.Extension())
}

// Save writes the photo atomically: a partially written file never
// appears under the final name.
func (s *FileSaver) Save(
	ctx context.Context,
	f *frame.Buffer,
) (_ret string, _err error) {
	logger.Debugf(ctx, "Save(ctx, %s)", f)
	defer func() { logger.Debugf(ctx, "/Save(ctx, %s): '%s' %v", f, _ret, _err) }()

	format, err := s.Format.imagingFormat()
	if err != nil {
		return "", err
	}
	img, err := f.Image()
	if err != nil {
		return "", fmt.Errorf("unable to get the image of %s: %w", f, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create directory '%s': %w", s.Dir, err)
	}

	ts := f.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	path := filepath.Join(s.Dir, s.FileName(ts))
	tmp, err := os.CreateTemp(s.Dir, ".photo-*.tmp")
	if err != nil {
		return "", fmt.Errorf("unable to create a temporary file in '%s': %w", s.Dir, err)
	}
	defer os.Remove(tmp.Name())

	var opts []imaging.EncodeOption
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(s.JPEGQuality))
	}
	if err := imaging.Encode(tmp, img, format, opts...); err != nil {
		tmp.Close()
		return "", fmt.Errorf("unable to encode the photo as %s: %w", s.Format, err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("unable to stat '%s': %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("unable to close '%s': %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("unable to rename '%s' to '%s': %w", tmp.Name(), path, err)
	}
	logger.Infof(ctx, "saved a %dx%d photo to '%s' (%s)", f.Width, f.Height, path, humanize.Bytes(uint64(info.Size())))
	return path, nil
}

// Result is the outcome of an asynchronous save.
type Result struct {
	Path string
	Err  error
}

// SaveAsync saves the photo in the background and reports exactly one
// Result. Failures are not retried.
func SaveAsync(
	ctx context.Context,
	saver Saver,
	f *frame.Buffer,
) <-chan Result {
	ch := make(chan Result, 1)
	observability.Go(ctx, func(ctx context.Context) {
		defer close(ch)
		path, err := saver.Save(ctx, f)
		ch <- Result{Path: path, Err: err}
	})
	return ch
}
