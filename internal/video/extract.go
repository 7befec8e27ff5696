package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/kovidgoyal/imaging"
	"github.com/sourcegraph/conc/pool"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/bryanchriswhite/spritegrid/internal/logger"
	"github.com/bryanchriswhite/spritegrid/internal/sheet"
)

// framePattern is the ffmpeg output template for sampled frames. The
// counter records capture order.
const framePattern = "frame_%05d.png"

// Request describes one extraction run.
type Request struct {
	Path      string
	FPS       float64 // sampling rate in frames per second
	Start     float64 // seconds; zero means from the beginning
	End       float64 // seconds; zero means to the end
	MaxFrames int     // zero means no cap
}

// Extractor samples frames out of a video with ffmpeg and decodes them
// into memory in capture order.
type Extractor struct{}

// NewExtractor creates a frame extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs ffmpeg over the requested time window and returns the
// complete decoded frame sequence. It blocks until every frame is in
// memory; partial sequences are never returned.
func (e *Extractor) Extract(ctx context.Context, req Request) ([]sheet.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.FPS <= 0 {
		return nil, fmt.Errorf("%w: sampling rate %v fps", ErrExtractionFailed, req.FPS)
	}
	if _, err := os.Stat(req.Path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, req.Path)
	}

	frameDir, err := os.MkdirTemp("", "spritegrid-frames-")
	if err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	defer os.RemoveAll(frameDir)

	log := logger.WithComponent("extractor")
	log.Info().
		Str("path", req.Path).
		Float64("fps", req.FPS).
		Msg("Extracting frames")

	if err := runSampling(req, filepath.Join(frameDir, framePattern)); err != nil {
		return nil, err
	}

	paths, err := listFrameFiles(frameDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no frames for %s", ErrExtractionFailed, req.Path)
	}

	frames, err := decodeFrames(paths)
	if err != nil {
		return nil, err
	}
	log.Info().Int("count", len(frames)).Msg("Frames extracted")
	return frames, nil
}

// runSampling drives ffmpeg: seek on the input side, fps filter for the
// sampling rate, duration and frame cap on the output side.
func runSampling(req Request, pattern string) error {
	inputArgs := ffmpeg.KwArgs{}
	if req.Start > 0 {
		inputArgs["ss"] = req.Start
	}

	outputArgs := ffmpeg.KwArgs{}
	if req.End > 0 {
		duration := req.End
		if req.Start > 0 {
			duration = req.End - req.Start
		}
		outputArgs["t"] = duration
	}
	if req.MaxFrames > 0 {
		outputArgs["frames:v"] = req.MaxFrames
	}

	err := ffmpeg.Input(req.Path, inputArgs).
		Filter("fps", ffmpeg.Args{strconv.FormatFloat(req.FPS, 'f', -1, 64)}).
		Output(pattern, outputArgs).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("%w: ffmpeg on %s: %v", ErrExtractionFailed, req.Path, err)
	}
	return nil
}

// listFrameFiles returns the sampled frame files in capture order.
func listFrameFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "frame_*.png"))
	if err != nil {
		return nil, fmt.Errorf("%w: list frames: %v", ErrExtractionFailed, err)
	}
	// The counter outgrows its zero padding past 99999 frames, so
	// lexical order is not capture order. Sort on the counter itself.
	sort.Slice(paths, func(i, j int) bool {
		return frameNumber(paths[i]) < frameNumber(paths[j])
	})
	return paths, nil
}

// frameNumber extracts the capture counter from a sampled frame name.
func frameNumber(path string) int {
	name := filepath.Base(path)
	name = strings.TrimSuffix(strings.TrimPrefix(name, "frame_"), ".png")
	n, _ := strconv.Atoi(name)
	return n
}

// decodeFrames loads frame files into memory. Decoding runs on all
// cores; slots are indexed so the result keeps capture order regardless
// of completion order.
func decodeFrames(paths []string) ([]sheet.Frame, error) {
	frames := make([]sheet.Frame, len(paths))

	p := pool.New().WithMaxGoroutines(runtime.NumCPU()).WithErrors()
	for i, path := range paths {
		p.Go(func() error {
			img, err := imaging.Open(path)
			if err != nil {
				return fmt.Errorf("%w: decode %s: %v", ErrExtractionFailed, filepath.Base(path), err)
			}
			frames[i] = sheet.Frame{Index: i, Image: img}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// EnsureTools verifies the ffmpeg and ffprobe binaries are reachable on
// PATH before any work starts.
func EnsureTools() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found in PATH, install it from https://ffmpeg.org/download.html", tool)
		}
	}
	return nil
}
