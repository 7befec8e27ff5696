// Package video wraps the ffmpeg and ffprobe binaries: probing stream
// information, sampling frames out of a container and decoding them
// into memory.
package video

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// videoExtensions lists the container extensions picked up when
// scanning a directory.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
	".wmv":  {},
	".flv":  {},
	".m4v":  {},
	".mpeg": {},
	".mpg":  {},
}

// IsVideoFile reports whether path carries a recognized video
// extension. The match is case-insensitive.
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedExtensions returns the recognized extensions in sorted
// order, for help and error text.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FindVideoFiles returns the video files directly inside dir, sorted by
// name. Subdirectories are not descended into.
func FindVideoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsVideoFile(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
