package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanchriswhite/spritegrid/internal/config"
	"github.com/bryanchriswhite/spritegrid/internal/logger"
	"github.com/bryanchriswhite/spritegrid/internal/pipeline"
	"github.com/bryanchriswhite/spritegrid/internal/sheet"
	"github.com/bryanchriswhite/spritegrid/internal/video"
)

var generateCmd = &cobra.Command{
	Use:     "generate [video or directory]",
	Aliases: []string{"gen"},
	Short:   "Generate a sprite sheet from a video",
	Long: `Generate a sprite sheet from a video file, or from every video in a
directory.

Frames are sampled at a fixed rate, laid out row by row on a near-square
grid (or a fixed number of columns) and written as one PNG. With --json,
a metadata file describing each frame's position is written next to the
sheet. Without an argument the current directory is converted.`,
	Example: `  # Convert one video, sampling 10 frames per second
  spritegrid generate clip.mp4

  # Every video in a directory, sheets collected in ./sheets
  spritegrid generate media/ -o sheets

  # 128x128 cells, 10 per row, with JSON metadata
  spritegrid generate clip.mp4 -w 128 -H 128 -c 10 --json

  # Two seconds from the middle, frames at half size
  spritegrid generate clip.mp4 --start 4 --end 6 -p 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	genOutput    string
	genFPS       float64
	genWidth     int
	genHeight    int
	genPercent   float64
	genColumns   int
	genStart     float64
	genEnd       float64
	genMaxFrames int
	genJSON      bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file, or directory in batch mode (default: <video>_spritesheet.png)")
	generateCmd.Flags().Float64VarP(&genFPS, "fps", "f", 0, "frame sampling rate (default 10)")
	generateCmd.Flags().IntVarP(&genWidth, "width", "w", 0, "frame width in pixels (default: source width)")
	generateCmd.Flags().IntVarP(&genHeight, "height", "H", 0, "frame height in pixels (default: source height)")
	generateCmd.Flags().Float64VarP(&genPercent, "percent", "p", 0, "scale frames to this percentage of the source size")
	generateCmd.Flags().IntVarP(&genColumns, "columns", "c", 0, "frames per row (default: near-square grid)")
	generateCmd.Flags().Float64Var(&genStart, "start", 0, "start time in seconds")
	generateCmd.Flags().Float64Var(&genEnd, "end", 0, "end time in seconds")
	generateCmd.Flags().IntVar(&genMaxFrames, "max-frames", 0, "cap on the number of sampled frames")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "write JSON placement metadata next to the sheet")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Initialize configuration manager
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}
	cfg := configMgr.Get()

	// Override log level from flag if provided
	if viper.IsSet("log_level") {
		if logLevel := viper.GetString("log_level"); logLevel != "" {
			cfg.LogLevel = logLevel
		}
	}
	logger.Init(cfg.LogLevel, true)

	if err := video.EnsureTools(); err != nil {
		return err
	}
	if err := validateGenerateFlags(cmd); err != nil {
		return err
	}

	fps := cfg.FPS
	if cmd.Flags().Changed("fps") {
		fps = genFPS
	}
	writeMetadata := cfg.WriteMetadata || genJSON

	resizer, err := sheet.ResizerByName(cfg.Filter)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	compositor := sheet.NewCompositor(resizer)
	compositor.MaxCanvasBytes = int64(cfg.MaxCanvasMB) << 20

	input := "."
	if len(args) == 1 {
		input = args[0]
	}
	videos, batch, err := resolveInputs(input)
	if err != nil {
		return err
	}

	// An extensionless batch output names a directory; make sure it
	// exists before the first sheet is staged into it.
	if batch && genOutput != "" && filepath.Ext(genOutput) == "" {
		if err := os.MkdirAll(genOutput, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	pipe := pipeline.New(video.NewExtractor(), compositor)

	failed := 0
	for _, videoPath := range videos {
		// Probing first also rejects unreadable or non-video inputs
		// before ffmpeg is spawned on them.
		info, err := video.Probe(cmd.Context(), videoPath)
		if err != nil {
			if !batch {
				return fmt.Errorf("failed to probe %s: %w", videoPath, err)
			}
			failed++
			logger.Get().Error().Err(err).Str("video", videoPath).Msg("Probe failed")
			continue
		}
		fmt.Printf("Converting %s (%dx%d, %.2fs, %.2f fps)\n",
			videoPath, info.Width, info.Height, info.Duration, info.FPS)

		opts := pipeline.Options{
			Input:     videoPath,
			Info:      info,
			Output:    pipeline.OutputPathFor(videoPath, genOutput, cfg.OutputSuffix, batch),
			FPS:       fps,
			Start:     genStart,
			End:       genEnd,
			MaxFrames: genMaxFrames,
			Width:     genWidth,
			Height:    genHeight,
			Percent:   genPercent,
			Columns:   genColumns,
			Metadata:  writeMetadata,
		}

		result, err := pipe.Run(cmd.Context(), opts)
		if err != nil {
			if !batch {
				return fmt.Errorf("failed to convert %s: %w", videoPath, err)
			}
			failed++
			logger.Get().Error().Err(err).Str("video", videoPath).Msg("Conversion failed")
			continue
		}

		fmt.Printf("✅ %s → %s (%d frames, %dx%d)\n",
			videoPath, result.SheetPath, result.Frames,
			result.Layout.CanvasWidth, result.Layout.CanvasHeight)
		if result.MetadataPath != "" {
			fmt.Printf("   metadata: %s\n", result.MetadataPath)
		}
	}

	if batch {
		fmt.Println()
		fmt.Printf("Done: %d succeeded, %d failed\n", len(videos)-failed, failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d conversions failed", failed, len(videos))
		}
	}
	return nil
}

// validateGenerateFlags rejects values that can never produce a sheet
// before any tool is spawned.
func validateGenerateFlags(cmd *cobra.Command) error {
	positives := []struct {
		name  string
		valid bool
	}{
		{"fps", genFPS > 0},
		{"width", genWidth > 0},
		{"height", genHeight > 0},
		{"percent", genPercent > 0},
		{"columns", genColumns > 0},
		{"max-frames", genMaxFrames > 0},
	}
	for _, p := range positives {
		if cmd.Flags().Changed(p.name) && !p.valid {
			return fmt.Errorf("--%s must be positive", p.name)
		}
	}
	if genStart < 0 {
		return fmt.Errorf("--start must not be negative")
	}
	if cmd.Flags().Changed("end") && genEnd <= genStart {
		return fmt.Errorf("--end must be after --start")
	}
	return nil
}

// resolveInputs expands the input argument into the list of videos to
// convert. A directory selects every video file directly inside it.
func resolveInputs(input string) ([]string, bool, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, false, fmt.Errorf("input not found: %s", input)
	}
	if !info.IsDir() {
		return []string{input}, false, nil
	}

	files, err := video.FindVideoFiles(input)
	if err != nil {
		return nil, false, fmt.Errorf("failed to scan %s: %w", input, err)
	}
	if len(files) == 0 {
		return nil, false, fmt.Errorf("no video files in %s (supported: %s)",
			input, strings.Join(video.SupportedExtensions(), " "))
	}
	fmt.Printf("Found %d video files in %s\n", len(files), input)
	return files, true, nil
}
