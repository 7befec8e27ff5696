package sheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/kovidgoyal/imaging"

	"github.com/bryanchriswhite/spritegrid/internal/logger"
)

// DefaultMaxCanvasBytes caps the sheet at 1 GiB of RGBA pixel data.
const DefaultMaxCanvasBytes int64 = 1 << 30

// Compositor renders a frame sequence onto a single canvas according to
// a Layout.
type Compositor struct {
	resizer Resizer

	// MaxCanvasBytes bounds the canvas allocation. Compose fails with
	// ErrCanvasTooLarge before allocating when the planned canvas
	// would exceed it.
	MaxCanvasBytes int64
}

// NewCompositor creates a compositor using the given resizer, or the
// Lanczos default when resizer is nil.
func NewCompositor(resizer Resizer) *Compositor {
	if resizer == nil {
		resizer = LanczosResizer{}
	}
	return &Compositor{
		resizer:        resizer,
		MaxCanvasBytes: DefaultMaxCanvasBytes,
	}
}

// Compose renders frames onto a fresh canvas at the positions the
// layout assigns. The frame at position i lands on layout.Placements[i];
// frames whose size differs from their cell are resized first. Cells
// past the last frame stay fully transparent, and every painted cell is
// opaque, so cell boundaries are recoverable from the alpha channel
// alone.
func (c *Compositor) Compose(frames []Frame, layout *Layout) (*image.NRGBA, error) {
	if len(frames) != len(layout.Placements) {
		return nil, fmt.Errorf("%w: %d frames for a plan of %d",
			ErrPlanMismatch, len(frames), len(layout.Placements))
	}
	if need := int64(layout.CanvasWidth) * int64(layout.CanvasHeight) * 4; need > c.MaxCanvasBytes {
		return nil, fmt.Errorf("%w: %dx%d canvas needs %d bytes (limit %d)",
			ErrCanvasTooLarge, layout.CanvasWidth, layout.CanvasHeight, need, c.MaxCanvasBytes)
	}

	canvas := imaging.New(layout.CanvasWidth, layout.CanvasHeight, color.NRGBA{})

	resized := 0
	for i, frame := range frames {
		p := layout.Placements[i]
		img := frame.Image
		if frame.Width() != p.W || frame.Height() != p.H {
			img = c.resizer.Resize(img, p.W, p.H)
			resized++
		}
		cell := image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
		draw.Draw(canvas, cell, img, img.Bounds().Min, draw.Src)
	}

	logger.WithComponent("compositor").Debug().
		Int("frames", len(frames)).
		Int("resized", resized).
		Int("width", layout.CanvasWidth).
		Int("height", layout.CanvasHeight).
		Msg("Canvas composed")
	return canvas, nil
}
