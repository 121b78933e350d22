package cmd

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/document"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/board"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/measure"
)

var (
	boardPreset string
	boardWidth  string
	boardHeight string
	overwrite   bool
	placeName   string
)

var newCmd = &cobra.Command{
	Use:   "new <layout>",
	Short: "Create a layout holding one board",
	Long: `Create a layout file with a single board at the origin. The board preset
defaults to the one in the config file.

Examples:
  otl new cuts.otl
  otl new cuts.otl --board "Perf Board" --width 50mm --height 30mm`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var placeCmd = &cobra.Command{
	Use:   "place <layout> <type> <x> <y>",
	Short: "Place a component",
	Long: `Place a component of the given type with its first control point at x, y.
Coordinates are pixels, or sizes such as 0.3in or 12mm.

Examples:
  otl place cuts.otl "Trace Cut" 115 31
  otl place cuts.otl "Trace Cut" 0.55in 0.15in --name Gap`,
	Args: cobra.ExactArgs(4),
	RunE: runPlace,
}

var setCmd = &cobra.Command{
	Use:   "set <layout> <name> <property> <value>",
	Short: "Change a component property",
	Long: `Change one property of a placed component. Property IDs are listed by
"otl props".

Examples:
  otl set cuts.otl Cut1 cutBetweenHoles false
  otl set cuts.otl Cut1 size 2mm
  otl set cuts.otl Cut1 fillColor "#FFFF00"`,
	Args: cobra.ExactArgs(4),
	RunE: runSet,
}

var removeCmd = &cobra.Command{
	Use:   "remove <layout> <name>",
	Short: "Remove a component",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(removeCmd)

	newCmd.Flags().StringVarP(&boardPreset, "board", "b", "", "board preset (see otl catalog --boards)")
	newCmd.Flags().StringVar(&boardWidth, "width", "2in", "board width")
	newCmd.Flags().StringVar(&boardHeight, "height", "1.5in", "board height")
	newCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "overwrite an existing file")

	placeCmd.Flags().StringVarP(&placeName, "name", "n", "", "instance name (default is the next free name)")
}

// loadLayout reads a layout file and applies the configured palette.
func loadLayout(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := document.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.SetPalette(palette)
	log.Printf("otl: loaded %s: %d boards, %d components", path, len(doc.Boards()), len(doc.Components()))
	return doc, nil
}

// saveLayout replaces the layout at path.
func saveLayout(path string, doc *document.Document) error {
	if err := doc.SaveFile(path); err != nil {
		return err
	}
	log.Printf("otl: saved %s", path)
	return nil
}

// parseCoord reads a pixel count or a physical size.
func parseCoord(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	size, err := measure.ParseSize(s)
	if err != nil {
		return 0, fmt.Errorf("coordinate %q is neither pixels nor a size", s)
	}
	return size.PixelsInt(), nil
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	name := boardPreset
	if name == "" {
		name = settings.Board
	}
	preset, ok := board.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown board preset %q", name)
	}
	w, err := measure.ParseSize(boardWidth)
	if err != nil {
		return err
	}
	h, err := measure.ParseSize(boardHeight)
	if err != nil {
		return err
	}
	b, err := preset.New(image.Rect(0, 0, w.PixelsInt(), h.PixelsInt()))
	if err != nil {
		return err
	}

	doc := document.New()
	if err := doc.AddBoard(b); err != nil {
		return err
	}
	if err := saveLayout(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %s %dx%d px\n", path, b.Name, b.Bounds.Dx(), b.Bounds.Dy())
	return nil
}

func runPlace(cmd *cobra.Command, args []string) error {
	path, typeName := args[0], args[1]
	x, err := parseCoord(args[2])
	if err != nil {
		return err
	}
	y, err := parseCoord(args[3])
	if err != nil {
		return err
	}

	doc, err := loadLayout(path)
	if err != nil {
		return err
	}
	if placeName != "" {
		if _, taken := doc.Find(placeName); taken {
			return fmt.Errorf("a component named %q already exists", placeName)
		}
	}
	c, err := doc.Place(typeName, image.Pt(x, y))
	if err != nil {
		return err
	}
	if placeName != "" {
		c.SetName(placeName)
	}
	if err := saveLayout(path, doc); err != nil {
		return err
	}

	where := "off board"
	if b, ok := doc.BoardAt(image.Pt(x, y)); ok {
		where = "on " + b.Name
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Placed %s at (%d, %d) %s\n", c.Name(), x, y, where)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	path, name, id, value := args[0], args[1], args[2], args[3]
	doc, err := loadLayout(path)
	if err != nil {
		return err
	}
	c, ok := doc.Find(name)
	if !ok {
		return fmt.Errorf("no component named %q in %s", name, path)
	}
	if err := c.Properties().SetText(c, id, value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := saveLayout(path, doc); err != nil {
		return err
	}
	text, _ := c.Properties().Text(c, id)
	fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %s\n", name, id, text)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]
	doc, err := loadLayout(path)
	if err != nil {
		return err
	}
	c, ok := doc.Find(name)
	if !ok {
		return fmt.Errorf("no component named %q in %s", name, path)
	}
	if err := doc.Remove(c); err != nil {
		return err
	}
	if err := saveLayout(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
	return nil
}
