package sheet

import (
	"fmt"
	"math"
)

// Placement pins one frame to a cell on the canvas. X/Y is the top-left
// corner in canvas pixels, W/H the cell size the frame is rendered at.
type Placement struct {
	Index int
	X     int
	Y     int
	W     int
	H     int
}

// Layout is a complete placement plan for one sheet. It is pure
// geometry: planning allocates no pixel memory and touches no frame
// data, so a plan can be inspected or rejected before any real work
// happens.
type Layout struct {
	Columns      int
	Rows         int
	FrameWidth   int
	FrameHeight  int
	CanvasWidth  int
	CanvasHeight int
	Placements   []Placement
}

// LayoutOptions carries the caller's overrides. A zero value means
// "derive it": frame size defaults to the source size, the column count
// to a near-square grid.
type LayoutOptions struct {
	FrameWidth  int
	FrameHeight int
	Columns     int
}

// PlanLayout computes the grid for frameCount frames of the given
// source size. Frames fill the grid row-major in capture order; the
// last row may be left partially empty. A column override larger than
// the frame count is clamped so the sheet never carries empty columns.
func PlanLayout(frameCount, sourceWidth, sourceHeight int, opts LayoutOptions) (*Layout, error) {
	if frameCount <= 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrInvalidInput, frameCount)
	}
	if sourceWidth <= 0 || sourceHeight <= 0 {
		return nil, fmt.Errorf("%w: source frame size %dx%d", ErrInvalidInput, sourceWidth, sourceHeight)
	}
	if opts.FrameWidth < 0 || opts.FrameHeight < 0 || opts.Columns < 0 {
		return nil, fmt.Errorf("%w: negative layout override", ErrInvalidInput)
	}

	frameWidth, frameHeight := cellSize(sourceWidth, sourceHeight, opts.FrameWidth, opts.FrameHeight)
	if frameWidth < 1 || frameHeight < 1 {
		return nil, fmt.Errorf("%w: frame size %dx%d after scaling", ErrInvalidInput, frameWidth, frameHeight)
	}

	columns := opts.Columns
	if columns == 0 {
		columns = int(math.Ceil(math.Sqrt(float64(frameCount))))
	}
	if columns > frameCount {
		columns = frameCount
	}
	rows := (frameCount + columns - 1) / columns

	layout := &Layout{
		Columns:      columns,
		Rows:         rows,
		FrameWidth:   frameWidth,
		FrameHeight:  frameHeight,
		CanvasWidth:  columns * frameWidth,
		CanvasHeight: rows * frameHeight,
		Placements:   make([]Placement, frameCount),
	}
	for i := range layout.Placements {
		layout.Placements[i] = Placement{
			Index: i,
			X:     (i % columns) * frameWidth,
			Y:     (i / columns) * frameHeight,
			W:     frameWidth,
			H:     frameHeight,
		}
	}
	return layout, nil
}

// cellSize resolves the rendered frame size from the overrides. With
// both dimensions set frames are stretched to exactly that size; with
// one set the other is derived from the source aspect ratio, truncated
// to whole pixels; with neither the source size is kept.
func cellSize(sourceWidth, sourceHeight, width, height int) (int, int) {
	switch {
	case width > 0 && height > 0:
		return width, height
	case width > 0:
		return width, sourceHeight * width / sourceWidth
	case height > 0:
		return sourceWidth * height / sourceHeight, height
	default:
		return sourceWidth, sourceHeight
	}
}
