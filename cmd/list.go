package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered file dependencies without loading them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd, v)
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), a.FileDependencies())
		},
	}
}
