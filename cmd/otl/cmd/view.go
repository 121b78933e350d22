package cmd

import (
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/config"
	"github.com/OpenTraceLab/OpenTraceLayout/internal/document"
	"github.com/OpenTraceLab/OpenTraceLayout/internal/viewer"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

var keepTheme bool

var viewCmd = &cobra.Command{
	Use:   "view [layout]",
	Short: "Open a layout in an interactive window",
	Long: `Open a layout in a window. Without a file the viewer starts empty and
the Open button picks one.

Controls:
  scroll          zoom at the cursor
  left drag       move the component under the cursor, snapping to holes
  right drag      pan (left drag on empty space pans too)
  space           fit the layout to the window
  T               toggle cut between holes on the selection
  delete          remove the selection
  Ctrl+S          save
  Esc, Q          quit

Examples:
  otl view cuts.otl
  otl view cuts.otl --theme Nord`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVar(&keepTheme, "keep-theme", false, "do not store theme changes in the config file")
}

func runView(cmd *cobra.Command, args []string) error {
	doc := document.New()
	path := ""
	if len(args) == 1 {
		path = args[0]
		d, err := loadLayout(path)
		if err != nil {
			return err
		}
		doc = d
	}

	opts := viewer.Options{
		Path:  path,
		Theme: settings.ColorTheme(),
		Save:  saveLayout,
	}
	if !keepTheme {
		opts.ThemeChanged = storeTheme
	}

	title := "OpenTraceLayout"
	if path != "" {
		title += " - " + filepath.Base(path)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title(title), app.Size(unit.Dp(1000), unit.Dp(800)))
		if err := viewer.New(w, doc, opts).Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

// storeTheme persists a theme picked in the viewer.
func storeTheme(t render.ColorTheme) {
	path, err := settingsPath()
	if err != nil {
		log.Printf("otl: %v", err)
		return
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("otl: %v", err)
		return
	}
	cfg.Theme = t.String()
	if err := config.Save(path, cfg); err != nil {
		log.Printf("otl: %v", err)
		return
	}
	log.Printf("otl: theme %s saved to %s", t, path)
}
