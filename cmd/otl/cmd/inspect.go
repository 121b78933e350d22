package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/internal/document"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/component"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <layout>",
	Short: "Check a layout file and summarise its contents",
	Long: `Check a layout file in two passes: a structural pass with a generic
s-expression reader, then a full load. Prints the boards, a per-type count
and every component with its control points and stored properties.

Examples:
  otl inspect cuts.otl
  otl inspect -v cuts.otl`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "File: %s (%d bytes)\n", path, len(data))
	exprs, err := sexp.Parse(bytes.NewReader(data))
	switch {
	case err != nil:
		fmt.Fprintf(out, "Structure: generic reader failed: %v\n", err)
	case len(exprs) == 0:
		fmt.Fprintf(out, "Structure: no expressions\n")
	case exprs[0].IsLeaf():
		fmt.Fprintf(out, "Structure: %d expressions, first is an atom\n", len(exprs))
	default:
		fmt.Fprintf(out, "Structure: %d expressions, first holds %d elements\n", len(exprs), exprs[0].LeafCount())
	}

	doc, err := document.Load(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	doc.SetPalette(palette)
	printSummary(cmd, doc)
	return nil
}

func printSummary(cmd *cobra.Command, doc *document.Document) {
	out := cmd.OutOrStdout()

	boards := doc.Boards()
	fmt.Fprintf(out, "\nBoards (%d):\n", len(boards))
	for _, b := range boards {
		fmt.Fprintf(out, "  %-14s %-6s %v spacing, %v\n", b.Name, b.Kind, b.Spacing, b.Bounds)
	}

	comps := doc.Components()
	counts := make(map[string]int)
	for _, c := range comps {
		counts[c.Descriptor().Name]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Fprintf(out, "\nComponents (%d):\n", len(comps))
	for _, t := range types {
		fmt.Fprintf(out, "  %-14s %d\n", t, counts[t])
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range comps {
		fmt.Fprintf(tw, "%s\t%s\t", c.Name(), c.Descriptor().Name)
		for i := 0; i < c.ControlPointCount(); i++ {
			p, _ := c.ControlPoint(i)
			fmt.Fprintf(tw, "%v ", p)
		}
		where := "off board"
		if p, err := c.ControlPoint(0); err == nil {
			if b, ok := doc.BoardAt(p); ok {
				where = b.Name
			}
		}
		fmt.Fprintf(tw, "\t%s\n", where)

		persistent, _ := c.(component.Persistent)
		for _, prop := range c.Properties().All() {
			stored := persistent == nil || persistent.IsPropertySet(prop.ID)
			if !stored && !verbose {
				continue
			}
			text, _ := prop.Text(c)
			origin := "stored"
			if !stored {
				origin = "default"
			}
			fmt.Fprintf(tw, "\t  %s\t%s\t%s\n", prop.Label, text, origin)
		}
	}
	tw.Flush()
}
