// Package container provides a name-addressed dependency registry, a
// resolution engine and an ordered file loader, with a Laravel-style
// Service Provider system on top.
//
// # Overview
//
// The container keeps one store per dependency kind: files, objects,
// components, directives and form view-models. Names are case-insensitive
// within a kind and must be unique unless a registration sets
// OverwriteExisting. Because Go has no runtime constructor reflection,
// constructable types are described by a Type carrying an explicit
// constructor and its injection metadata.
//
// # Container Lifecycle
//
//  1. Create: c := container.New(container.WithProfile(&cfg.App), container.WithDocument(doc))
//  2. Compose: register files, objects, components... (directly or via providers)
//  3. Init: c.Init(ctx) loads eager files in order, then runs "AppStartup"
//  4. Serve: resolve objects, load deferred files on demand
//
// # Objects
//
//	// SingleInstance (default): constructed once, on first resolution
//	c.RegisterObjectDependency(container.ObjectDependency{
//	    Dependency: container.Dependency{Name: "Clock"},
//	    Type:       container.NewType("Clock", newClock),
//	})
//
//	// Transient: a fresh instance per resolution
//	c.RegisterObjectDependency(container.ObjectDependency{
//	    Dependency: container.Dependency{Name: "Request"},
//	    Type:       container.NewType("Request", newRequest),
//	    LifeCycle:  container.Transient,
//	})
//
//	// Pre-built value
//	c.RegisterInstanceDependency(container.ObjectDependency{
//	    Dependency: container.Dependency{Name: "Config"},
//	}, cfg)
//
// # Resolving
//
//	raw, err := c.ResolveObject("Clock")
//	clock, err := container.Resolve[*Clock](c, "Clock")
//	hooks, err := c.ResolveAllObjects("Hook")
//
// When no object matches, the custom resolvers registered with
// RegisterCustomObjectResolver are asked in order before ErrNotFound.
//
// # Injection
//
//	orders := container.NewType("Orders", newOrders,
//	    container.Inject("Repository"),  // appended as ResolveObject("Repository")
//	    container.InjectAll("Hook"),     // appended as ResolveAllObjects("Hook")
//	)
//	c.DeclareObject(container.ObjectDependency{Dependency: container.Dependency{Name: "Orders"}}, orders)
//
// # Eligibility
//
//	c.RegisterObjectDependency(container.ObjectDependency{
//	    Dependency: container.Dependency{
//	        Name:      "Profiler",
//	        Predicate: func(p *config.Profile) bool { return p.IsDebugMode() },
//	    },
//	    Type: profilerType,
//	})
//
// # Files
//
//	c.RegisterFileDependency(container.FileDependency{
//	    Dependency: container.Dependency{Name: "jquery"},
//	    Path:       "lib/jquery/jquery",               // → Files/V<version>/lib/jquery/jquery.js
//	})
//	c.RegisterFileDependency(container.FileDependency{
//	    Dependency: container.Dependency{Name: "charts"},
//	    Path:       "https://cdn.example.com/charts",  // → https://cdn.example.com/charts.js
//	    LoadTime:   container.Deferred,
//	})
//
//	f, err := c.ResolveFile(ctx, "charts")
//	err = f.Wait(ctx)
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return c.RegisterInstanceDependency(container.ObjectDependency{
//	        Dependency: container.Dependency{Name: container.AppStartupName},
//	    }, container.AppStartupFunc(configure))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
