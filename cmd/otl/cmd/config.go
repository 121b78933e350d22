package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/config"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persistent settings",
	Long: `Show the active settings. The "set" subcommand stores a setting in the
config file; the "themes" subcommand lists the colour themes.

Examples:
  otl config
  otl config set theme Nord
  otl config set ppi 300
  otl config set board "Perf Board"`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <theme|ppi|board> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List colour themes",
	Args:  cobra.NoArgs,
	RunE:  runConfigThemes,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configThemesCmd)
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.Path()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:  %s\n", path)
	fmt.Fprintf(out, "theme: %s\n", settings.Theme)
	fmt.Fprintf(out, "ppi:   %v\n", settings.PixelsPerInch)
	fmt.Fprintf(out, "board: %s\n", settings.Board)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	// Flag overrides are not persisted.
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "theme":
		t, err := render.ParseTheme(value)
		if err != nil {
			return err
		}
		cfg.Theme = t.String()
	case "ppi", "pixels_per_inch":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("ppi %q: %w", value, err)
		}
		if v <= 0 {
			return fmt.Errorf("ppi must be positive, got %v", v)
		}
		cfg.PixelsPerInch = v
	case "board":
		cfg.Board = value
	default:
		return fmt.Errorf("unknown setting %q (want theme, ppi or board)", args[0])
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

func runConfigThemes(cmd *cobra.Command, args []string) error {
	for _, t := range render.Themes() {
		mark := " "
		if t == settings.ColorTheme() {
			mark = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, t)
	}
	return nil
}
