package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/km-arc/go-depmanager/framework/config"
	"github.com/km-arc/go-depmanager/framework/container"
	"github.com/km-arc/go-depmanager/framework/document"
	"github.com/km-arc/go-depmanager/framework/providers"
	"github.com/km-arc/go-depmanager/framework/routing"
)

// Application is the top-level application container.
// It embeds the dependency Container and ProviderRegistry so user code can
// call app.RegisterFileDependency(), app.Register() directly,
// like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Config    *config.Config
	Logger    *slog.Logger
}

type options struct {
	logger   *slog.Logger
	document container.Document
	manifest string
}

// Option customises New.
type Option func(*options)

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithDocument replaces the HTTP document built from cfg.Files.
func WithDocument(d container.Document) Option { return func(o *options) { o.document = d } }

// WithManifest registers the file dependencies declared in path.
func WithManifest(path string) Option { return func(o *options) { o.manifest = path } }

// New creates the application and registers the framework providers
// (config, routing, manifest), in that order.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Load()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	}
	if o.document == nil {
		doc := document.NewHTTP(cfg.Files.Origin, cfg.Files.Timeout)
		doc.Logger = o.logger
		o.document = doc
	}

	c := container.New(
		container.WithProfile(&cfg.App),
		container.WithFilesBasePath(cfg.Files.BasePath),
		container.WithDocument(o.document),
		container.WithLogger(o.logger),
	)
	c.AfterResolving(func(name string, instance any) {
		o.logger.Debug("object resolved", "name", name, "type", fmt.Sprintf("%T", instance))
	})

	app := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		Config:    cfg,
		Logger:    o.logger,
	}

	// Register framework core providers (same order as Laravel)
	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.RoutingServiceProvider{Logger: o.logger},
		&providers.ManifestServiceProvider{Path: o.manifest},
	} {
		if err := app.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Start boots the providers (if needed) and runs the eager bootstrap: eager
// files load in order, then AppStartup is invoked.
func (a *Application) Start(ctx context.Context) error {
	if err := a.Boot(); err != nil {
		return err
	}
	started := time.Now()
	if err := a.Init(ctx); err != nil {
		return err
	}
	a.Logger.Info("application started",
		"name", a.Config.App.Name, "env", a.Config.App.Env, "version", a.Config.App.Version,
		"took", time.Since(started))
	return nil
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, providers.RouterName)
}

// Serve runs the inspection server on addr until ctx is done, then shuts it
// down gracefully. An empty addr listens on ":" + APP_PORT.
func (a *Application) Serve(ctx context.Context, addr string) error {
	router, err := a.Router()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = ":" + a.Config.App.Port
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("inspection server listening", "name", a.Config.App.Name, "addr", addr, "env", a.Config.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsProduction() bool  { return a.Config.App.IsProduction() }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) Version() string     { return a.Config.App.Version }
