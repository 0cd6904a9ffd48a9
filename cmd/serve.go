package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Boot the application and serve the inspection API",
		Long: `Serve boots the application, then exposes:

  GET  /dependencies/files[?status=...&loadTime=...]
  GET  /dependencies/components
  GET  /dependencies/directives
  GET  /dependencies/view-models
  POST /dependencies/files/{name}/load[?wait=2s]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(cmd, v)
			if err != nil {
				return err
			}
			if err := a.Start(ctx); err != nil {
				return err
			}
			return a.Serve(ctx, v.GetString("addr"))
		},
	}
	cmd.Flags().String("addr", "", "listen address (default: :APP_PORT)")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
