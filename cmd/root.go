package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/km-arc/go-depmanager/framework/app"
	"github.com/km-arc/go-depmanager/framework/config"
	"github.com/km-arc/go-depmanager/framework/container"
	"github.com/km-arc/go-depmanager/framework/document"
	"github.com/km-arc/go-depmanager/framework/providers"
)

var version = "dev"

// NewRootCmd builds the depmanager command tree with its own viper
// instance, so flags and DEPMAN_* variables never leak between runs.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DEPMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "depmanager",
		Short: "Register, resolve and load application dependencies",
		Long: `depmanager composes an application from a dependency manifest, loads its
eager scripts and stylesheets in order and serves an inspection API.

Examples:
  # Show what a manifest registers
  depmanager list --manifest deps.yaml

  # Run the eager bootstrap without fetching anything
  depmanager boot --manifest deps.hcl --dry-run

  # Boot and serve the inspection API
  depmanager serve --manifest deps.yaml --addr :8000`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSlice("env-file", nil, "dotenv files to load (default: .env)")
	root.PersistentFlags().StringP("manifest", "m", "", "file dependency manifest (.yaml, .yml or .hcl)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: LOG_LEVEL)")
	root.PersistentFlags().Bool("dry-run", false, "settle every file in memory instead of fetching it")
	for _, name := range []string{"env-file", "manifest", "log-level", "dry-run"} {
		_ = v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	root.AddCommand(newListCmd(v), newBootCmd(v), newServeCmd(v))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// buildApp loads configuration and composes the application from the
// flags and environment bound to v.
func buildApp(cmd *cobra.Command, v *viper.Viper) (*app.Application, error) {
	cfg := config.Load(v.GetStringSlice("env-file")...)
	if level := v.GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	opts := []app.Option{
		app.WithLogger(app.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())),
		app.WithManifest(v.GetString("manifest")),
	}
	if v.GetBool("dry-run") {
		opts = append(opts, app.WithDocument(document.NewMemory()))
	}

	a, err := app.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	logger := a.Logger
	err = a.Register(&providers.StartupServiceProvider{
		Startup: container.AppStartupFunc(func(ctx context.Context) error {
			logger.Info("application configured", "files", len(a.FileDependencies()))
			return nil
		}),
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// printFiles writes the file table: name, load time, kind, status, path.
func printFiles(w io.Writer, files []container.FileStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLOAD\tKIND\tSTATUS\tPATH")
	for _, f := range files {
		status := string(f.Status)
		if f.FailFatal {
			status += " (fatal)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Name, f.LoadTime, f.Kind, status, f.Path)
	}
	return tw.Flush()
}
