package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/byhongda/xdot/pkg/layout"
)

// renderCommand creates the render command for one-shot exports.
func (c *CLI) renderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DOT graph to a file",
		Long:  `Render lays out a DOT graph and writes it to a file without opening the viewer. The output extension selects the format: .svg, .png, or .xdot for the annotated layout text.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")

			src, name, err := readSource(args)
			if err != nil {
				return err
			}
			format, err := formatForPath(output)
			if err != nil {
				return err
			}

			engine, store, err := c.newEngine(noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			spin := newSpinnerWithContext(ctx, "Laying out "+name)
			spin.Start()

			g, _, err := engine.Layout(ctx, src)
			if err != nil {
				spin.StopWithError("Layout failed")
				return err
			}
			data, err := engine.Render(ctx, src, format)
			if err != nil {
				spin.StopWithError("Render failed")
				return err
			}
			spin.Stop()

			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}

			printSuccess("Rendered %s", name)
			printFile(output)
			printStats(len(g.Nodes), len(g.Edges))
			printNextStep("Explore it interactively", "xdot "+name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "graph.svg", "output file (.svg, .png, .xdot)")
	return cmd
}

// formatForPath maps an output file extension to a render format.
func formatForPath(path string) (graphviz.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return graphviz.SVG, nil
	case ".png":
		return graphviz.PNG, nil
	case ".xdot", ".dot":
		return layout.FormatXDot, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want .svg, .png or .xdot)", filepath.Ext(path))
	}
}
