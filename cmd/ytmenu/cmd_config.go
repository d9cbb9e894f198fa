package main

import (
	"fmt"

	"ytmenu/internal/config"
	"ytmenu/internal/credentials"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the resolved configuration. The YouTrack token never
// appears in the output; only its presence in the keyring is reported.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, exists := config.FindConfigFile()
		if !exists {
			return fmt.Errorf("no configuration found at %s, run ytmenu once to set up", path)
		}

		cfg, err := config.LoadFrom(path)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)

		if credentials.NewManager().HasToken() {
			fmt.Fprintln(cmd.OutOrStdout(), "# youtrack token: stored in OS keyring")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "# youtrack token: not set")
		}
		return nil
	},
}
