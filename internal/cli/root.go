package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hypergraph lays out and edits nested hypergraph documents",
		Long: `Hypergraph lays out nested hypergraph documents: parents are grid-packed
around their children, overlaps are resolved and edges are routed between the
closest anchors. Documents can be rendered, dragged from the command line,
edited in the terminal or served over HTTP with a live event stream.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: "+configPathHint()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dragCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.docsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.completionCommand())

	return root
}
