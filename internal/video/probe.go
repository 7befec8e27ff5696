package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/bryanchriswhite/spritegrid/internal/logger"
)

// defaultFrameRate is assumed when the stream does not report one.
const defaultFrameRate = 30.0

// Info describes the first video stream of a media file.
type Info struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration"` // seconds
	FPS      float64 `json:"fps"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

// Probe reads stream and container information for path with ffprobe.
func Probe(ctx context.Context, path string) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("%w: ffprobe %s: %v", ErrUnsupportedFormat, path, err)
	}

	info, err := parseProbe([]byte(raw))
	if err != nil {
		return nil, err
	}
	logger.WithComponent("probe").Debug().
		Str("path", path).
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("duration", info.Duration).
		Float64("fps", info.FPS).
		Msg("Video probed")
	return info, nil
}

func parseProbe(raw []byte) (*Info, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: parse ffprobe output: %v", ErrUnsupportedFormat, err)
	}

	var stream *probeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			stream = &out.Streams[i]
			break
		}
	}
	if stream == nil {
		return nil, fmt.Errorf("%w: no video stream", ErrUnsupportedFormat)
	}
	if stream.Width <= 0 || stream.Height <= 0 {
		return nil, fmt.Errorf("%w: stream reports size %dx%d",
			ErrUnsupportedFormat, stream.Width, stream.Height)
	}

	info := &Info{
		Width:  stream.Width,
		Height: stream.Height,
		FPS:    parseFrameRate(stream.RFrameRate),
	}
	// Streams without a container duration (pipes, some fragmented
	// files) leave Duration at zero.
	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: duration %q: %v",
				ErrUnsupportedFormat, out.Format.Duration, err)
		}
		info.Duration = d
	}
	return info, nil
}

// parseFrameRate parses ffprobe's fractional rate notation, e.g.
// "30000/1001". A missing rate falls back to defaultFrameRate.
func parseFrameRate(s string) float64 {
	if s == "" {
		return defaultFrameRate
	}
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0
	}
	den, err := strconv.ParseFloat(denStr, 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}
