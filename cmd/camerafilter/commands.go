package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/photo"
	"github.com/xaionaro-go/camerafilter/pipeline"
	"github.com/xaionaro-go/camerafilter/preset"
	"github.com/xaionaro-go/camerafilter/render"
	"github.com/xaionaro-go/camerafilter/types"
	"github.com/xaionaro-go/observability"
)

var errQuit = errors.New("quit")

// controller maps text commands onto the Coordinator, the way a UI
// maps its buttons.
type controller struct {
	Coordinator *pipeline.Coordinator
	Session     *capture.Session
	Preview     *render.LatestJPEG
	Saver       photo.Saver
	Output      io.Writer
}

type statistics struct {
	Session  capture.Statistics
	Pipeline pipeline.Statistics
	Preview  types.StatisticsItem
}

const helpText = `commands:
  filters          list the available filters
  filter <name>    select a filter
  switch           switch between the back and the front camera
  capture          take a photo (pauses the preview)
  resume           resume the preview
  stats            print statistics
  quit             exit
`

func (c *controller) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	logger.Debugf(ctx, "command: %q", fields)
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "help", "?":
		fmt.Fprint(c.Output, helpText)
	case "filters":
		cur := c.Coordinator.CurrentFilter()
		for _, e := range c.Coordinator.Catalog.Entries() {
			marker := " "
			if e.ID == cur {
				marker = "*"
			}
			fmt.Fprintf(c.Output, "%s %-10s %s\n", marker, e.ID, e.DisplayName)
		}
	case "filter":
		if len(args) != 1 {
			return fmt.Errorf("usage: filter <name>")
		}
		id, err := preset.ParseID(args[0])
		if err != nil {
			return err
		}
		entry, err := c.Coordinator.SetFilter(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Output, "filter: %s\n", entry.DisplayName)
	case "switch":
		pos, err := c.Coordinator.SwitchCamera(ctx)
		if err != nil {
			return fmt.Errorf("unable to switch the camera (staying at '%s'): %w", pos, err)
		}
		fmt.Fprintf(c.Output, "camera: %s\n", pos)
	case "capture", "photo":
		return c.capture(ctx)
	case "resume":
		if err := c.Coordinator.ResumePreview(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.Output, "preview resumed")
	case "stats":
		b, err := json.Marshal(c.stats())
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Output, "%s\n", b)
		if c.Preview != nil {
			fmt.Fprintf(c.Output, "preview: %s encoded\n", humanize.Bytes(c.Preview.Encoded.Bytes.Load()))
		}
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command '%s'; type 'help'", cmd)
	}
	return nil
}

func (c *controller) capture(ctx context.Context) error {
	still, err := c.Coordinator.TakePhoto(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Output, "took a %dx%d photo; the preview is paused, type 'resume' to continue\n", still.Width, still.Height)
	if c.Saver == nil {
		return nil
	}
	resultCh := photo.SaveAsync(ctx, c.Saver, still)
	observability.Go(ctx, func(ctx context.Context) {
		res := <-resultCh
		if res.Err != nil {
			fmt.Fprintf(c.Output, "unable to save the photo: %v\n", res.Err)
			return
		}
		fmt.Fprintf(c.Output, "saved the photo to '%s'\n", res.Path)
	})
	return nil
}

func (c *controller) stats() statistics {
	s := statistics{
		Pipeline: c.Coordinator.GetStats(),
	}
	if c.Session != nil {
		s.Session = c.Session.GetStats()
	}
	if c.Preview != nil {
		s.Preview = c.Preview.Encoded.ToStats()
	}
	return s
}
