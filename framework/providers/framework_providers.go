package providers

import (
	"context"
	"log/slog"

	"github.com/km-arc/go-depmanager/framework/config"
	"github.com/km-arc/go-depmanager/framework/container"
	gohttp "github.com/km-arc/go-depmanager/framework/http"
	"github.com/km-arc/go-depmanager/framework/manifest"
	"github.com/km-arc/go-depmanager/framework/routing"
)

// Object names bound by the framework providers.
const (
	ConfigName    = "Config"
	ProfileName   = "Profile"
	RouterName    = "Router"
	InspectorName = "Inspector"
)

func instance(app *container.Container, name string, v any) error {
	return app.RegisterInstanceDependency(container.ObjectDependency{
		Dependency: container.Dependency{Name: name},
	}, v)
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration into the container.
//
// Bound objects:
//   - "Config"  → *config.Config
//   - "Profile" → *config.Profile (the active profile predicates see)
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->instance('config', new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load()
	}
	if err := instance(app, ConfigName, cfg); err != nil {
		return err
	}
	return instance(app, ProfileName, app.Profile())
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and mounts the dependency
// inspection API on it.
//
// Bound objects:
//   - "Router"    → *routing.Router
//   - "Inspector" → *gohttp.Inspector
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
	Logger *slog.Logger
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	logger := p.Logger
	err := app.RegisterObjectDependency(container.ObjectDependency{
		Dependency: container.Dependency{Name: RouterName},
		Type: container.NewType("Router", func(...any) (any, error) {
			return routing.New(logger), nil
		}),
	})
	if err != nil {
		return err
	}

	return app.DeclareObject(container.ObjectDependency{
		Dependency: container.Dependency{Name: InspectorName},
	}, container.NewType("Inspector", func(args ...any) (any, error) {
		c := args[0].(*container.Container)
		cfg := args[1].(*config.Config)
		return &gohttp.Inspector{Container: c, LoadTimeout: cfg.Files.Timeout}, nil
	}, container.Inject(container.ContainerName), container.Inject(ConfigName)))
}

// Boot mounts the inspection routes once every provider has registered.
func (p *RoutingServiceProvider) Boot(app *container.Container) error {
	router, err := container.Resolve[*routing.Router](app, RouterName)
	if err != nil {
		return err
	}
	inspector, err := container.Resolve[*gohttp.Inspector](app, InspectorName)
	if err != nil {
		return err
	}
	inspector.Routes(router)
	return nil
}

// ── ManifestServiceProvider ───────────────────────────────────────────────────

// ManifestServiceProvider registers the file dependencies declared in a
// YAML or HCL manifest. An empty Path registers nothing.
type ManifestServiceProvider struct {
	container.BaseProvider
	Path string
}

func (p *ManifestServiceProvider) Register(app *container.Container) error {
	if p.Path == "" {
		return nil
	}
	m, err := manifest.Load(p.Path)
	if err != nil {
		return err
	}
	return m.Register(app)
}

// ── StartupServiceProvider ────────────────────────────────────────────────────

// StartupServiceProvider binds the application's startup collaborator,
// invoked by Init once the eager files have settled.
//
// Bound objects:
//   - "AppStartup" → container.AppStartup
type StartupServiceProvider struct {
	container.BaseProvider
	Startup container.AppStartup
}

func (p *StartupServiceProvider) Register(app *container.Container) error {
	startup := p.Startup
	if startup == nil {
		startup = container.AppStartupFunc(func(context.Context) error { return nil })
	}
	return app.RegisterInstanceDependency(container.ObjectDependency{
		Dependency: container.Dependency{Name: container.AppStartupName, OverwriteExisting: true},
	}, startup)
}
