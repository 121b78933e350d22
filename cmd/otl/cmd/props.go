package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
)

var propsCmd = &cobra.Command{
	Use:   "props <type> | props <layout> <name>",
	Short: "Show the editable properties of a component",
	Long: `With one argument, show the properties of a freshly placed component of
that type. With a layout file and a component name, show the values of that
component; values marked "default" are not stored in the file.

Examples:
  otl props "Trace Cut"
  otl props cuts.otl Cut1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runProps,
}

func init() {
	rootCmd.AddCommand(propsCmd)
}

func runProps(cmd *cobra.Command, args []string) error {
	var c component.Component
	if len(args) == 1 {
		typ, ok := component.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown component type %q", args[0])
		}
		c = typ.New()
		if pa, ok := c.(component.PaletteAware); ok {
			pa.SetPalette(palette)
		}
	} else {
		doc, err := loadLayout(args[0])
		if err != nil {
			return err
		}
		found, ok := doc.Find(args[1])
		if !ok {
			return fmt.Errorf("no component named %q in %s", args[1], args[0])
		}
		c = found
	}

	persistent, _ := c.(component.Persistent)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tLABEL\tKIND\tVALUE\t\n")
	for _, p := range c.Properties().All() {
		text, err := p.Text(c)
		if err != nil {
			return err
		}
		origin := ""
		if persistent != nil && !persistent.IsPropertySet(p.ID) {
			origin = "default"
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%s\n", p.ID, p.Label, p.Kind, text, origin)
	}
	return tw.Flush()
}
