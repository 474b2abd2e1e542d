package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/pkg/prefs"
)

// prefsCommand creates the prefs command for the remembered user settings.
func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change remembered preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPrefs(cmd.Context())
			if err != nil {
				return err
			}
			printKeyValue("user", p.UserName)
			printKeyValue("email", p.Email)
			printKeyValue("document", p.HypergraphName)
			printKeyValue("file", p.File)
			return nil
		},
	})
	cmd.AddCommand(c.prefsSetCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget all preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newPrefs()
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Preferences cleared")
			return nil
		},
	})

	return cmd
}

func (c *CLI) prefsSetCommand() *cobra.Command {
	var user, email, document, file string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newPrefs()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			p, err := store.Update(cmd.Context(), func(p *prefs.Prefs) {
				if flags.Changed("user") {
					p.UserName = user
				}
				if flags.Changed("email") {
					p.Email = email
				}
				if flags.Changed("document") {
					p.HypergraphName = document
				}
				if flags.Changed("file") {
					p.File = file
				}
			})
			if err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}
			printSuccess("Preferences saved")
			printDetail("%s", store.Path())
			printKeyValue("user", p.UserName)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&document, "document", "", "document the editor and server open by default")
	cmd.Flags().StringVar(&file, "file", "", "document file the editor opens by default")
	return cmd
}

// loadPrefs reads the preferences, falling back to the defaults.
func (c *CLI) loadPrefs(ctx context.Context) (prefs.Prefs, error) {
	store, err := c.newPrefs()
	if err != nil {
		return prefs.Default(), err
	}
	return store.Load(ctx)
}
