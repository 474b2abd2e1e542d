package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// docsCommand creates the docs command for managing stored documents.
func (c *CLI) docsCommand() *cobra.Command {
	var models string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage stored documents",
	}
	cmd.PersistentFlags().StringVar(&models, "models", "", "models directory (overrides the configured store)")

	cmd.AddCommand(c.docsListCommand(&models))
	cmd.AddCommand(c.docsShowCommand(&models))
	cmd.AddCommand(c.docsImportCommand(&models))
	cmd.AddCommand(c.docsDeleteCommand(&models))

	return cmd
}

func (c *CLI) docsListCommand(models *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd.Context(), *models)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No documents")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}
}

func (c *CLI) docsShowCommand(models *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd.Context(), *models)
			if err != nil {
				return err
			}
			defer store.Close()

			raw, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = stdout.Write(raw)
			return err
		},
	}
}

func (c *CLI) docsImportCommand(models *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import [document.json]",
		Short: "Validate a document file and add it to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDocument(args[0])
			if err != nil {
				return err
			}
			d, warnings, err := hypergraph.Parse(raw)
			if err != nil {
				return err
			}
			if name == "" {
				name = d.Name
			}

			store, err := c.newStore(cmd.Context(), *models)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(cmd.Context(), name, raw); err != nil {
				return err
			}
			printSuccess("Imported %s", StyleHighlight.Render(name))
			printDetail("%s", humanize.Bytes(uint64(len(raw))))
			printStats(d.Len(), len(d.Edges), len(warnings), false)
			for _, w := range warnings {
				printWarning("%s", w.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "store name (default: the document's name)")
	return cmd
}

func (c *CLI) docsDeleteCommand(models *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd.Context(), *models)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
