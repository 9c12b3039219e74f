package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// viewCommand is an explicit alias for the root command's default action.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Open a DOT graph in the interactive viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runView,
	}
}

// runView opens the interactive viewer on the given file (or stdin).
func (c *CLI) runView(cmd *cobra.Command, args []string) error {
	noCache, _ := cmd.Flags().GetBool("no-cache")

	src, name, err := readSource(args)
	if err != nil {
		return err
	}

	engine, store, err := c.newEngine(noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	model := newViewerModel(cmd.Context(), engine, loggerFromContext(cmd.Context()), src, name)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	return err
}
