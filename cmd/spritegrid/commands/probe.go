package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanchriswhite/spritegrid/internal/config"
	"github.com/bryanchriswhite/spritegrid/internal/logger"
	"github.com/bryanchriswhite/spritegrid/internal/video"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video>",
	Short: "Show video stream information",
	Long: `Show the size, duration and frame rate of a video as reported by
ffprobe. Useful for picking a sampling rate and frame size before
generating a sheet.`,
	Example: `  # Inspect a video
  spritegrid probe clip.mp4

  # Machine-readable output
  spritegrid probe clip.mp4 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

var probeFormat string

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringVarP(&probeFormat, "format", "f", "table", "output format (table or json)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}
	cfg := configMgr.Get()

	if viper.IsSet("log_level") {
		if logLevel := viper.GetString("log_level"); logLevel != "" {
			cfg.LogLevel = logLevel
		}
	}
	logger.Init(cfg.LogLevel, true)

	if err := video.EnsureTools(); err != nil {
		return err
	}

	info, err := video.Probe(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", args[0], err)
	}

	switch probeFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "table":
		fmt.Printf("Size:     %dx%d\n", info.Width, info.Height)
		fmt.Printf("Duration: %.2fs\n", info.Duration)
		fmt.Printf("FPS:      %.2f\n", info.FPS)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (use 'table' or 'json')", probeFormat)
	}
}
