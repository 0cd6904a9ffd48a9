package container

import (
	"errors"
	"strings"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations, mirroring Laravel's
// Illuminate\Support\ServiceProvider.
//
// Register runs during the composition phase and should only register.
// Boot runs after every eager provider has registered, so it may resolve.
//
//	type BillingProvider struct{ container.BaseProvider }
//
//	func (p *BillingProvider) Register(c *container.Container) error {
//	    return c.DeclareObject(container.ObjectDependency{
//	        Dependency: container.Dependency{Name: "Invoices"},
//	    }, container.NewType("Invoices", newInvoices, container.Inject("Config")))
//	}
type ServiceProvider interface {
	// Register adds dependencies to the container.
	Register(c *Container) error

	// Boot is called after all eager providers are registered.
	Boot(c *Container) error

	// Provides lists the object names a deferred provider registers.
	Provides() []string

	// IsDeferred returns true if the provider should only be registered
	// when one of its Provides() names is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders. Deferred providers
// are served through the container's custom resolver chain: the first
// ResolveObject of a name they provide registers (and, once booted, boots)
// the provider and retries the lookup.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // lower-cased name → provider
	registered map[ServiceProvider]bool
	booted     bool
	chained    bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register (unless deferred).
// Registering the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, name := range provider.Provides() {
			r.deferred[strings.ToLower(name)] = provider
		}
		needChain := !r.chained
		r.chained = true
		r.mu.Unlock()
		if needChain {
			return r.app.RegisterCustomObjectResolver(deferredResolver{r})
		}
		return nil
	}

	booted := r.booted
	r.eager = append(r.eager, provider)
	r.mu.Unlock()

	if err := provider.Register(r.app); err != nil {
		return err
	}
	// If already booted, boot this provider immediately
	if booted {
		return provider.Boot(r.app)
	}
	return nil
}

// Boot calls Boot on every eager provider, once.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range providers {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}

// take removes and returns the deferred provider serving name.
func (r *ProviderRegistry) take(name string) (ServiceProvider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider, ok := r.deferred[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	for key, p := range r.deferred {
		if p == provider {
			delete(r.deferred, key)
		}
	}
	return provider, true
}

// deferredResolver is the custom resolver backing deferred providers.
type deferredResolver struct {
	r *ProviderRegistry
}

func (d deferredResolver) CanResolve(name string) (bool, error) {
	d.r.mu.Lock()
	defer d.r.mu.Unlock()
	_, ok := d.r.deferred[strings.ToLower(name)]
	return ok, nil
}

func (d deferredResolver) Resolve(name string) (any, error) {
	provider, ok := d.r.take(name)
	if !ok {
		return nil, nil
	}
	if err := provider.Register(d.r.app); err != nil {
		return nil, err
	}
	if d.r.Booted() {
		if err := provider.Boot(d.r.app); err != nil {
			return nil, err
		}
	}
	instance, err := d.r.app.ResolveObject(name)
	// The provider did not register name after all: let the chain continue.
	var de *DependencyError
	if errors.As(err, &de) && de.Kind == ErrNotFound && sameName(de.Name, name) {
		return nil, nil
	}
	return instance, err
}
