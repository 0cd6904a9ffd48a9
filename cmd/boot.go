package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBootCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "boot",
		Short: "Run the eager bootstrap and report every file's status",
		Long: `Boot loads every eligible eager file in manifest order, then runs the
application startup. The status table is printed even when a fatal file
aborts the bootstrap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd, v)
			if err != nil {
				return err
			}
			startErr := a.Start(cmd.Context())
			if err := printFiles(cmd.OutOrStdout(), a.FileDependencies()); err != nil {
				return err
			}
			return startErr
		},
	}
}
