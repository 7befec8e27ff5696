package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovidgoyal/imaging"

	"github.com/bryanchriswhite/spritegrid/internal/sheet"
)

// OutputPathFor resolves the sheet path for one source video. An
// explicit output is used as-is for a single video. In batch mode an
// extensionless output names a directory to collect the sheets, while
// one with an extension becomes a per-video name suffix; with no
// output the sheet lands next to its video as <stem><suffix>.png.
func OutputPathFor(videoPath, output, suffix string, batch bool) string {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	switch {
	case output == "":
		return filepath.Join(filepath.Dir(videoPath), stem+suffix+".png")
	case !batch:
		return output
	case filepath.Ext(output) == "":
		return filepath.Join(output, stem+suffix+".png")
	default:
		return stem + "_" + output
	}
}

// MetadataPathFor swaps the sheet's extension for .json.
func MetadataPathFor(sheetPath string) string {
	return strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath)) + ".json"
}

// writeOutputs publishes the sheet and optional metadata atomically:
// both are staged as temp files in the target directory and renamed
// into place only once fully written, so consumers never observe a
// partial sheet or a sheet without its metadata.
func writeOutputs(sheetPath string, canvas image.Image, meta *sheet.Metadata) error {
	dir := filepath.Dir(sheetPath)

	sheetTmp, err := stageSheet(dir, canvas)
	if err != nil {
		return err
	}

	var metaTmp string
	if meta != nil {
		metaTmp, err = stageMetadata(dir, meta)
		if err != nil {
			os.Remove(sheetTmp)
			return err
		}
	}

	if err := os.Rename(sheetTmp, sheetPath); err != nil {
		os.Remove(sheetTmp)
		if metaTmp != "" {
			os.Remove(metaTmp)
		}
		return fmt.Errorf("write sheet: %w", err)
	}
	if metaTmp != "" {
		if err := os.Rename(metaTmp, MetadataPathFor(sheetPath)); err != nil {
			// Roll the sheet back rather than leave it without its
			// metadata.
			os.Remove(metaTmp)
			os.Remove(sheetPath)
			return fmt.Errorf("write metadata: %w", err)
		}
	}
	return nil
}

func stageSheet(dir string, canvas image.Image) (string, error) {
	f, err := os.CreateTemp(dir, ".spritegrid-*.png")
	if err != nil {
		return "", fmt.Errorf("stage sheet: %w", err)
	}
	if err := imaging.Encode(f, canvas, imaging.PNG); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("encode sheet: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("stage sheet: %w", err)
	}
	return f.Name(), nil
}

func stageMetadata(dir string, meta *sheet.Metadata) (string, error) {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	data = append(data, '\n')

	f, err := os.CreateTemp(dir, ".spritegrid-*.json")
	if err != nil {
		return "", fmt.Errorf("stage metadata: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("stage metadata: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("stage metadata: %w", err)
	}
	return f.Name(), nil
}
