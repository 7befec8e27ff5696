// Package pipeline runs one video-to-sheet conversion end to end:
// probe, frame extraction, layout planning, compositing and output.
package pipeline

import (
	"context"
	"fmt"

	"github.com/bryanchriswhite/spritegrid/internal/logger"
	"github.com/bryanchriswhite/spritegrid/internal/sheet"
	"github.com/bryanchriswhite/spritegrid/internal/video"
)

// FrameSource produces the complete ordered frame sequence for one
// run. The planner needs the total count and the native frame size up
// front, so sources must not return partial sequences.
type FrameSource interface {
	Extract(ctx context.Context, req video.Request) ([]sheet.Frame, error)
}

// Options configures a single conversion run.
type Options struct {
	Input  string
	Output string

	// Sampling window
	FPS       float64
	Start     float64 // seconds; zero means from the beginning
	End       float64 // seconds; zero means to the end
	MaxFrames int

	// Frame scaling. Percent scales the probed source size and wins
	// over Width/Height when set.
	Width   int
	Height  int
	Percent float64

	// Info is the caller's probe result for Input, when it already has
	// one. The percent path probes on demand when it is nil.
	Info *video.Info

	Columns  int
	Metadata bool
}

// Result summarizes a completed run.
type Result struct {
	SheetPath    string
	MetadataPath string // empty when no metadata was requested
	Frames       int
	Layout       *sheet.Layout
}

// Pipeline converts videos into sprite sheets. It is stateless across
// runs; one Pipeline can serve a whole batch.
type Pipeline struct {
	source     FrameSource
	compositor *sheet.Compositor
}

// New creates a pipeline over the given frame source and compositor.
func New(source FrameSource, compositor *sheet.Compositor) *Pipeline {
	if compositor == nil {
		compositor = sheet.NewCompositor(nil)
	}
	return &Pipeline{source: source, compositor: compositor}
}

// Run executes one conversion. Source errors pass through unchanged so
// callers can distinguish a missing file from a failed extraction; all
// option errors surface before any frame is extracted.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	log := logger.WithComponent("pipeline")

	width, height := opts.Width, opts.Height
	if opts.Percent > 0 {
		info := opts.Info
		if info == nil {
			probed, err := video.Probe(ctx, opts.Input)
			if err != nil {
				return nil, err
			}
			info = probed
		}
		width = int(float64(info.Width) * opts.Percent / 100)
		height = int(float64(info.Height) * opts.Percent / 100)
		log.Debug().
			Float64("percent", opts.Percent).
			Int("width", width).
			Int("height", height).
			Msg("Scaled frame size from source")
	}

	frames, err := p.source.Extract(ctx, video.Request{
		Path:      opts.Input,
		FPS:       opts.FPS,
		Start:     opts.Start,
		End:       opts.End,
		MaxFrames: opts.MaxFrames,
	})
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: source produced no frames", sheet.ErrInvalidInput)
	}

	layout, err := sheet.PlanLayout(len(frames), frames[0].Width(), frames[0].Height(), sheet.LayoutOptions{
		FrameWidth:  width,
		FrameHeight: height,
		Columns:     opts.Columns,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("frames", len(frames)).
		Int("columns", layout.Columns).
		Int("rows", layout.Rows).
		Int("canvas_width", layout.CanvasWidth).
		Int("canvas_height", layout.CanvasHeight).
		Msg("Layout planned")

	canvas, err := p.compositor.Compose(frames, layout)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SheetPath: opts.Output,
		Frames:    len(frames),
		Layout:    layout,
	}
	if opts.Metadata {
		meta := sheet.EmitMetadata(layout)
		result.MetadataPath = MetadataPathFor(opts.Output)
		if err := writeOutputs(opts.Output, canvas, &meta); err != nil {
			return nil, err
		}
	} else {
		if err := writeOutputs(opts.Output, canvas, nil); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("sheet", result.SheetPath).
		Str("metadata", result.MetadataPath).
		Msg("Sheet written")
	return result, nil
}

func validate(opts Options) error {
	switch {
	case opts.Input == "":
		return fmt.Errorf("%w: input path is empty", sheet.ErrInvalidInput)
	case opts.Output == "":
		return fmt.Errorf("%w: output path is empty", sheet.ErrInvalidInput)
	case opts.FPS <= 0:
		return fmt.Errorf("%w: sampling rate %v fps", sheet.ErrInvalidInput, opts.FPS)
	case opts.Start < 0:
		return fmt.Errorf("%w: negative start time", sheet.ErrInvalidInput)
	case opts.End != 0 && opts.End <= opts.Start:
		return fmt.Errorf("%w: empty time window [%v, %v]", sheet.ErrInvalidInput, opts.Start, opts.End)
	case opts.Width < 0 || opts.Height < 0:
		return fmt.Errorf("%w: negative frame size", sheet.ErrInvalidInput)
	case opts.Percent < 0:
		return fmt.Errorf("%w: negative scale percent", sheet.ErrInvalidInput)
	case opts.Columns < 0:
		return fmt.Errorf("%w: negative column count", sheet.ErrInvalidInput)
	case opts.MaxFrames < 0:
		return fmt.Errorf("%w: negative frame cap", sheet.ErrInvalidInput)
	}
	return nil
}
