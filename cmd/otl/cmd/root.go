package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/config"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"

	// Component types register themselves with the catalog.
	_ "github.com/OpenTraceLab/OpenTraceLayout/pkg/component/connectivity"
)

var (
	// Global flags
	verbose    bool
	configPath string
	themeName  string
	ppi        float64

	// Resolved settings, valid after PersistentPreRunE
	settings *config.AppConfig
	palette  render.Palette
)

var rootCmd = &cobra.Command{
	Use:   "otl",
	Short: "OpenTraceLayout - strip board layout components",
	Long: `OpenTraceLayout (otl) works with strip board and perfboard layouts:
  - list the component catalog and its editable properties
  - create layouts, place components and edit their properties
  - render layouts and catalog icons to PNG
  - view layouts in an interactive window

Examples:
  otl catalog                                  # List component types
  otl new cuts.otl --board "Vero Board"        # Create an empty layout
  otl place cuts.otl "Trace Cut" 115 31        # Place a trace cut
  otl set cuts.otl Cut1 cutBetweenHoles false  # Edit a property
  otl render cuts.otl -o cuts.png              # Export to PNG
  otl view cuts.otl                            # Open the viewer`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config directory)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "colour theme, overrides the config file")
	rootCmd.PersistentFlags().Float64Var(&ppi, "ppi", 0, "render pixels per inch, overrides the config file")
}

// loadSettings reads the config file, applies flag overrides and installs
// the render scale.
func loadSettings(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetFlags(log.Ltime | log.Lmicroseconds)
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	path := configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if ppi != 0 {
		cfg.PixelsPerInch = ppi
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if palette, err = cfg.Apply(); err != nil {
		return err
	}
	settings = cfg
	log.Printf("otl: config %s, theme %s, %v ppi", path, cfg.Theme, cfg.PixelsPerInch)
	return nil
}
