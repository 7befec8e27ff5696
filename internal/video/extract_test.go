package video

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/kovidgoyal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFramePNG(t *testing.T, dir string, index int, c color.NRGBA) string {
	t.Helper()
	img := imaging.New(2, 2, c)
	path := filepath.Join(dir, fmt.Sprintf(framePattern, index))
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestListFrameFilesCaptureOrder(t *testing.T) {
	dir := t.TempDir()
	// Written out of order, with counters on both sides of the padding
	// width: frame_100000.png sorts before frame_99999.png lexically.
	for _, i := range []int{3, 100000, 1, 99999, 10, 2} {
		writeFramePNG(t, dir, i, color.NRGBA{A: 255})
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644))

	paths, err := listFrameFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{
		"frame_00001.png",
		"frame_00002.png",
		"frame_00003.png",
		"frame_00010.png",
		"frame_99999.png",
		"frame_100000.png",
	}, names)
}

func TestDecodeFramesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	colors := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	var paths []string
	for i, c := range colors {
		paths = append(paths, writeFramePNG(t, dir, i+1, c))
	}

	frames, err := decodeFrames(paths)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	for i, frame := range frames {
		assert.Equal(t, i, frame.Index)
		assert.Equal(t, 2, frame.Width())
		assert.Equal(t, 2, frame.Height())
		got := color.NRGBAModel.Convert(frame.Image.At(0, 0)).(color.NRGBA)
		assert.Equal(t, colors[i], got, "frame %d", i)
	}
}

func TestDecodeFramesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFramePNG(t, dir, 1, color.NRGBA{A: 255})
	bad := filepath.Join(dir, "frame_00002.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0644))

	frames, err := decodeFrames([]string{good, bad})
	assert.Nil(t, frames)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractRejectsBadRate(t *testing.T) {
	for _, fps := range []float64{0, -5} {
		_, err := NewExtractor().Extract(context.Background(), Request{Path: "clip.mp4", FPS: fps})
		assert.ErrorIs(t, err, ErrExtractionFailed, "fps %v", fps)
	}
}

func TestExtractMissingSource(t *testing.T) {
	req := Request{Path: filepath.Join(t.TempDir(), "absent.mp4"), FPS: 10}
	_, err := NewExtractor().Extract(context.Background(), req)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestExtractCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor().Extract(ctx, Request{Path: "clip.mp4", FPS: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
