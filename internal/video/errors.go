package video

import "errors"

var (
	// ErrSourceNotFound indicates the input path does not exist or is
	// not readable.
	ErrSourceNotFound = errors.New("source not found")

	// ErrUnsupportedFormat indicates ffprobe could not make sense of
	// the input, or it carries no video stream.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed indicates ffmpeg ran but produced no usable
	// frames, or a frame could not be decoded.
	ErrExtractionFailed = errors.New("extraction failed")
)
