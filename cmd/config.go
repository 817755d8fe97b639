package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zalepa/plantio/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var env bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, ` + config.DefaultFile + ` or --config,
.env, ` + config.EnvPrefix + `_* variables and flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env {
				return config.Usage(cmd.OutOrStdout())
			}
			return a.cfg.Write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&env, "env", false, "list the environment variables instead")
	return cmd
}
