package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLayoutAutoGrid(t *testing.T) {
	tests := []struct {
		name       string
		frameCount int
		columns    int
		rows       int
	}{
		{"single frame", 1, 1, 1},
		{"two frames", 2, 2, 1},
		{"perfect square", 16, 4, 4},
		{"one past square", 17, 5, 4},
		{"ten frames", 10, 4, 3},
		{"fifty frames", 50, 8, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := PlanLayout(tt.frameCount, 64, 64, LayoutOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.columns, layout.Columns)
			assert.Equal(t, tt.rows, layout.Rows)
			assert.Len(t, layout.Placements, tt.frameCount)
		})
	}
}

func TestPlanLayoutSixteenFramesSquare(t *testing.T) {
	layout, err := PlanLayout(16, 64, 64, LayoutOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, layout.Columns)
	assert.Equal(t, 4, layout.Rows)
	assert.Equal(t, 64, layout.FrameWidth)
	assert.Equal(t, 64, layout.FrameHeight)
	assert.Equal(t, 256, layout.CanvasWidth)
	assert.Equal(t, 256, layout.CanvasHeight)
}

func TestPlanLayoutPartialLastRow(t *testing.T) {
	layout, err := PlanLayout(10, 32, 32, LayoutOptions{Columns: 4})
	require.NoError(t, err)

	assert.Equal(t, 4, layout.Columns)
	assert.Equal(t, 3, layout.Rows)
	require.Len(t, layout.Placements, 10)

	// Last row holds frames 8 and 9; cells 10 and 11 stay unplaced.
	assert.Equal(t, Placement{Index: 8, X: 0, Y: 64, W: 32, H: 32}, layout.Placements[8])
	assert.Equal(t, Placement{Index: 9, X: 32, Y: 64, W: 32, H: 32}, layout.Placements[9])
}

func TestPlanLayoutPlacementFormula(t *testing.T) {
	layout, err := PlanLayout(12, 100, 50, LayoutOptions{Columns: 5})
	require.NoError(t, err)

	for i, p := range layout.Placements {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, (i%5)*100, p.X, "frame %d", i)
		assert.Equal(t, (i/5)*50, p.Y, "frame %d", i)
		assert.Equal(t, 100, p.W)
		assert.Equal(t, 50, p.H)
	}
}

func TestPlanLayoutGridInvariants(t *testing.T) {
	for frameCount := 1; frameCount <= 60; frameCount++ {
		layout, err := PlanLayout(frameCount, 20, 10, LayoutOptions{})
		require.NoError(t, err)

		cells := layout.Columns * layout.Rows
		assert.GreaterOrEqual(t, cells, frameCount, "grid too small for %d frames", frameCount)
		assert.Less(t, layout.Columns*(layout.Rows-1), frameCount,
			"grid has an empty row for %d frames", frameCount)

		// Every placement lies on the grid and within the canvas, and
		// no two frames share a cell.
		seen := make(map[[2]int]bool, frameCount)
		for _, p := range layout.Placements {
			assert.Zero(t, p.X%layout.FrameWidth)
			assert.Zero(t, p.Y%layout.FrameHeight)
			assert.LessOrEqual(t, p.X+p.W, layout.CanvasWidth)
			assert.LessOrEqual(t, p.Y+p.H, layout.CanvasHeight)
			cell := [2]int{p.X, p.Y}
			assert.False(t, seen[cell], "cell %v used twice", cell)
			seen[cell] = true
		}
	}
}

func TestPlanLayoutColumnsClamped(t *testing.T) {
	layout, err := PlanLayout(5, 64, 64, LayoutOptions{Columns: 10})
	require.NoError(t, err)

	assert.Equal(t, 5, layout.Columns)
	assert.Equal(t, 1, layout.Rows)
	assert.Equal(t, 320, layout.CanvasWidth)
}

func TestPlanLayoutFrameSizeOverrides(t *testing.T) {
	tests := []struct {
		name        string
		opts        LayoutOptions
		frameWidth  int
		frameHeight int
	}{
		{"both set stretches", LayoutOptions{FrameWidth: 128, FrameHeight: 128}, 128, 128},
		{"width only keeps aspect", LayoutOptions{FrameWidth: 320}, 320, 240},
		{"height only keeps aspect", LayoutOptions{FrameHeight: 240}, 320, 240},
		{"derived height truncates", LayoutOptions{FrameWidth: 333}, 333, 249},
		{"no overrides keep source size", LayoutOptions{}, 640, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := PlanLayout(4, 640, 480, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.frameWidth, layout.FrameWidth)
			assert.Equal(t, tt.frameHeight, layout.FrameHeight)
			assert.Equal(t, layout.Columns*tt.frameWidth, layout.CanvasWidth)
			assert.Equal(t, layout.Rows*tt.frameHeight, layout.CanvasHeight)
		})
	}
}

func TestPlanLayoutInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		frameCount int
		srcW, srcH int
		opts       LayoutOptions
	}{
		{"zero frames", 0, 64, 64, LayoutOptions{}},
		{"negative frames", -3, 64, 64, LayoutOptions{}},
		{"zero source width", 4, 0, 64, LayoutOptions{}},
		{"zero source height", 4, 64, 0, LayoutOptions{}},
		{"negative width override", 4, 64, 64, LayoutOptions{FrameWidth: -1}},
		{"negative height override", 4, 64, 64, LayoutOptions{FrameHeight: -1}},
		{"negative columns", 4, 64, 64, LayoutOptions{Columns: -2}},
		{"derived height collapses to zero", 4, 4000, 2, LayoutOptions{FrameWidth: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := PlanLayout(tt.frameCount, tt.srcW, tt.srcH, tt.opts)
			assert.Nil(t, layout)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPlanLayoutDeterministic(t *testing.T) {
	first, err := PlanLayout(23, 48, 27, LayoutOptions{Columns: 7})
	require.NoError(t, err)
	second, err := PlanLayout(23, 48, 27, LayoutOptions{Columns: 7})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
