package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bryanchriswhite/spritegrid/internal/config"
	"github.com/bryanchriswhite/spritegrid/internal/sheet"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage spritegrid configuration",
	Long:  `View and manage spritegrid configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current spritegrid configuration.`,
	Example: `  # Show configuration as YAML (default)
  spritegrid config show

  # Show configuration as JSON
  spritegrid config show --format json`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Long:  `Set a specific configuration value and save it.`,
	Example: `  # Sample 24 frames per second by default
  spritegrid config set fps 24

  # Write the JSON sidecar on every run
  spritegrid config set write_metadata true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Long:  `Get a specific configuration value.`,
	Example: `  # Get the default sampling rate
  spritegrid config get fps

  # Get the resampling filter
  spritegrid config get filter`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

var configFormat string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml", "output format (yaml or json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return writeConfig(os.Stdout, configMgr.Get(), configFormat)
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		return encoder.Encode(cfg)
	default:
		return fmt.Errorf("unsupported format: %s (use 'yaml' or 'json')", format)
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg := configMgr.Get()
	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := configMgr.Update(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Configuration updated: %s = %s\n", key, value)
	return nil
}

// applyConfigValue parses value into the cfg field that key names.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "fps":
		fps, err := strconv.ParseFloat(value, 64)
		if err != nil || fps <= 0 {
			return fmt.Errorf("invalid fps: %s (must be a positive number)", value)
		}
		cfg.FPS = fps
	case "filter":
		if _, err := sheet.ResizerByName(value); err != nil {
			return fmt.Errorf("invalid filter: %s (use: lanczos, catmullrom)", value)
		}
		cfg.Filter = value
	case "output_suffix":
		cfg.OutputSuffix = value
	case "max_canvas_mb":
		mb, err := strconv.Atoi(value)
		if err != nil || mb <= 0 {
			return fmt.Errorf("invalid max_canvas_mb: %s (must be a positive number)", value)
		}
		cfg.MaxCanvasMB = mb
	case "write_metadata":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s (use: true or false)", value)
		}
		cfg.WriteMetadata = enabled
	case "log_level":
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[value] {
			return fmt.Errorf("invalid log level: %s (use: debug, info, warn, error)", value)
		}
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	value, err := configValue(configMgr.Get(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func configValue(cfg *config.Config, key string) (interface{}, error) {
	switch key {
	case "fps":
		return cfg.FPS, nil
	case "filter":
		return cfg.Filter, nil
	case "output_suffix":
		return cfg.OutputSuffix, nil
	case "max_canvas_mb":
		return cfg.MaxCanvasMB, nil
	case "write_metadata":
		return cfg.WriteMetadata, nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return nil, fmt.Errorf("unknown configuration key: %s", key)
	}
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(configMgr.Path())
	return nil
}
