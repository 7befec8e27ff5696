package sheet

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizersProduceRequestedSize(t *testing.T) {
	src := solidFrame(0, 10, 6, color.NRGBA{R: 30, G: 60, B: 90, A: 255}).Image

	for name, r := range map[string]Resizer{
		"lanczos":    LanczosResizer{},
		"catmullrom": CatmullRomResizer{},
	} {
		t.Run(name, func(t *testing.T) {
			tests := []struct{ w, h int }{
				{5, 3},   // downscale
				{20, 12}, // upscale
				{20, 6},  // stretch one axis
				{1, 1},   // collapse
			}
			for _, tt := range tests {
				out := r.Resize(src, tt.w, tt.h)
				assert.Equal(t, tt.w, out.Bounds().Dx())
				assert.Equal(t, tt.h, out.Bounds().Dy())
			}
		})
	}
}

func TestResizerByName(t *testing.T) {
	r, err := ResizerByName("")
	require.NoError(t, err)
	assert.IsType(t, LanczosResizer{}, r)

	r, err = ResizerByName("Lanczos")
	require.NoError(t, err)
	assert.IsType(t, LanczosResizer{}, r)

	r, err = ResizerByName("catmull-rom")
	require.NoError(t, err)
	assert.IsType(t, CatmullRomResizer{}, r)

	_, err = ResizerByName("nearest")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
