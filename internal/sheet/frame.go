// Package sheet plans sprite sheet grids, composites frames onto a
// single canvas and derives the placement metadata consumed by game
// engines.
package sheet

import "image"

// Frame is one decoded video frame. Index is the frame's position in
// the sampled sequence, counted from zero in capture order.
type Frame struct {
	Index int
	Image image.Image
}

// Width returns the frame's pixel width.
func (f Frame) Width() int {
	return f.Image.Bounds().Dx()
}

// Height returns the frame's pixel height.
func (f Frame) Height() int {
	return f.Image.Bounds().Dy()
}
