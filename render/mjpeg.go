package render

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/observability"
)

const (
	mjpegBoundary = "camerafilterframe"

	PathStream   = "/stream.mjpg"
	PathSnapshot = "/snapshot.jpg"
)

// MJPEGServer serves the frames of a LatestJPEG as a
// multipart/x-mixed-replace stream and as single snapshots.
type MJPEGServer struct {
	Source *LatestJPEG
}

func NewMJPEGServer(source *LatestJPEG) *MJPEGServer {
	return &MJPEGServer{
		Source: source,
	}
}

func (s *MJPEGServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(PathStream, s.ServeStream)
	mux.HandleFunc(PathSnapshot, s.ServeSnapshot)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><body style="margin:0;background:#000"><img src="%s" style="max-width:100%%"></body></html>`, PathStream)
	})
	return mux
}

func (s *MJPEGServer) ServeSnapshot(w http.ResponseWriter, r *http.Request) {
	jpeg, seq := s.Source.Latest()
	if jpeg == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(jpeg)))
	w.Header().Set("X-Frame-Sequence", strconv.FormatUint(seq, 10))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(jpeg); err != nil {
		logger.Debugf(r.Context(), "unable to write the snapshot: %v", err)
	}
}

func (s *MJPEGServer) ServeStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger.Debugf(ctx, "ServeStream: %s", r.RemoteAddr)
	defer func() { logger.Debugf(ctx, "/ServeStream: %s", r.RemoteAddr) }()

	flusher, _ := w.(http.Flusher)
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(mjpegBoundary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+mjpegBoundary)
	w.Header().Set("Cache-Control", "no-store")

	var lastSeq uint64
	sentAny := false
	for {
		changeCh := s.Source.ChangeChan()
		jpeg, seq := s.Source.Latest()
		if jpeg != nil && (!sentAny || seq != lastSeq) {
			part, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type":   {"image/jpeg"},
				"Content-Length": {strconv.Itoa(len(jpeg))},
			})
			if err != nil {
				logger.Debugf(ctx, "unable to create a part: %v", err)
				return
			}
			if _, err := part.Write(jpeg); err != nil {
				logger.Debugf(ctx, "unable to write a frame: %v", err)
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
			lastSeq, sentAny = seq, true
		}

		select {
		case <-ctx.Done():
			return
		case <-changeCh:
		}
	}
}

// Serve listens on the address until the context is cancelled.
func (s *MJPEGServer) Serve(ctx context.Context, listenAddr string) (_err error) {
	logger.Debugf(ctx, "Serve(ctx, '%s')", listenAddr)
	defer func() { logger.Debugf(ctx, "/Serve(ctx, '%s'): %v", listenAddr, _err) }()

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("unable to listen on '%s': %w", listenAddr, err)
	}
	logger.Infof(ctx, "serving the preview at http://%s%s", listener.Addr(), PathStream)
	return s.ServeListener(ctx, listener)
}

func (s *MJPEGServer) ServeListener(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	observability.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancelFn := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancelFn()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Debugf(ctx, "unable to shutdown the preview server gracefully: %v", err)
			srv.Close()
		}
	})
	err := srv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
