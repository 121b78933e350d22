package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/board"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
)

var showBoards bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the component types that can be placed",
	Long: `List every registered component type grouped by category, with the
prefix used to name new instances.

Examples:
  otl catalog
  otl catalog --boards`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVarP(&showBoards, "boards", "b", false, "also list board presets")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	category := ""
	for _, typ := range component.Types() {
		d := typ.Descriptor
		if d.Category != category {
			if category != "" {
				fmt.Fprintln(tw)
			}
			category = d.Category
			fmt.Fprintf(tw, "%s\n", category)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", d.Name, d.InstanceNamePrefix, d.Description)
		if verbose {
			fmt.Fprintf(tw, "  \tauthor: %s\tz-order %.1f, bom %v, stretchable %v\n",
				d.Author, d.ZOrder, d.BOMPolicy, d.Stretchable)
		}
	}

	if showBoards {
		fmt.Fprintf(tw, "\nBoards\n")
		for _, name := range board.Names() {
			p, _ := board.Lookup(name)
			fmt.Fprintf(tw, "  %s\t%s\t%v spacing\n", p.Name, p.Kind, p.Spacing)
		}
	}
	return tw.Flush()
}
