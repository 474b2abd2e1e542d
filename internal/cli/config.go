package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypergraph/internal/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, c.configPath())
		},
	})
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			printKeyValue("padding", fmt.Sprintf("%g x %g", cfg.Layout.PaddingW, cfg.Layout.PaddingH))
			printKeyValue("overlap", fmt.Sprintf("check %g, adjust %g", cfg.Overlap.CheckBuffer, cfg.Overlap.AdjustBuffer))
			printKeyValue("labels", fmt.Sprintf("buffer %g", cfg.Labels.Buffer))
			printKeyValue("segments", strconv.Itoa(cfg.Curves.Segments))
			printKeyValue("cache", cfg.Cache.Backend+" (ttl "+cfg.Cache.TTL.String()+")")
			printKeyValue("storage", cfg.Storage.Backend)
			printKeyValue("server", cfg.Server.Addr)
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configPath() string {
	if c.ConfigPath != "" {
		return c.ConfigPath
	}
	return config.DefaultPath()
}

// configPathHint is shown in --config help without touching the filesystem.
func configPathHint() string {
	return "$XDG_CONFIG_HOME/" + appName + "/config.toml"
}
