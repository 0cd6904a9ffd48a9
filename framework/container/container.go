package container

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/km-arc/go-depmanager/framework/config"
)

// ── Runtime entries ──────────────────────────────────────────────────────────

// fileEntry pairs a file dependency's configuration with its load state.
type fileEntry struct {
	dep    FileDependency
	path   string // final path, computed at init
	status LoadStatus
	future *Future
	err    error
}

// objectEntry pairs an object dependency with its cached instance.
type objectEntry struct {
	dep ObjectDependency

	mu       sync.Mutex
	instance any
	built    bool
	building bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the process-wide dependency registry.
//
// It supports:
//   - File, object, component, directive and form view-model registrations
//   - Case-insensitive names with conflict detection and opt-in overwrite
//   - Eligibility predicates evaluated against the active profile
//   - SingleInstance / Transient object lifecycles
//   - A fallback chain of custom object resolvers
//   - Constructor injection for declared types
//   - Ordered eager loading and on-demand loading of file dependencies
type Container struct {
	mu sync.RWMutex

	profile   *config.Profile
	filesBase string
	document  Document
	logger    *slog.Logger

	files      []*fileEntry
	objects    []*objectEntry
	components []ComponentDependency
	directives []DirectiveDependency
	viewModels []FormViewModelDependency
	resolvers  []CustomResolver

	// resolved callbacks: []func(name, instance)
	afterResolving []func(string, any)

	initialized bool
}

// Option configures a Container.
type Option func(*Container)

// WithProfile sets the profile predicates are evaluated against.
func WithProfile(p *config.Profile) Option {
	return func(c *Container) { c.profile = p }
}

// WithFilesBasePath sets the prefix for relative file paths (default "Files").
func WithFilesBasePath(base string) Option {
	return func(c *Container) { c.filesBase = base }
}

// WithDocument sets the page document files are loaded through.
func WithDocument(d Document) Option {
	return func(c *Container) { c.document = d }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) { c.logger = l }
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		profile:   &config.Profile{},
		filesBase: "Files",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.profile == nil {
		c.profile = &config.Profile{}
	}
	// The container resolves itself, like Laravel's $app->instance('app', $app)
	_ = c.RegisterInstanceDependency(ObjectDependency{Dependency: Dependency{Name: ContainerName}}, c)
	return c
}

// ContainerName is the object name the container is registered under.
const ContainerName = "Container"

// Profile returns the active profile.
func (c *Container) Profile() *config.Profile { return c.profile }

// SetDocument replaces the page document. It must be called before Init.
func (c *Container) SetDocument(d Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.document = d
}

// eligible evaluates d's predicate against the active profile.
func (c *Container) eligible(d Dependency) bool {
	return d.Predicate == nil || d.Predicate(c.profile)
}

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterFileDependency adds a script or stylesheet. Files are stored
// regardless of their predicate; eligibility is checked when they load.
//
//	c.RegisterFileDependency(container.FileDependency{
//	    Dependency: container.Dependency{Name: "jquery"},
//	    Path:       "lib/jquery/jquery",
//	})
func (c *Container) RegisterFileDependency(dep FileDependency) error {
	const op = "registerFile"
	if dep.Name == "" {
		return validationf(op, "", "file dependency's name is empty")
	}
	if dep.Path == "" {
		return validationf(op, dep.Name, "file dependency's path is empty")
	}
	if dep.LoadTime == "" {
		dep.LoadTime = Eager
	}
	if dep.Kind == "" {
		dep.Kind = Script
	}
	if dep.LoadTime != Eager && dep.LoadTime != Deferred {
		return validationf(op, dep.Name, "unsupported load time %q", dep.LoadTime)
	}
	if dep.Kind != Script && dep.Kind != Style {
		return validationf(op, dep.Name, "unsupported resource kind %q", dep.Kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &fileEntry{dep: dep, status: NotLoaded}
	files, err := place(c.files, entry, dep.Name, dep.OverwriteExisting, op,
		func(e *fileEntry) string { return e.dep.Name })
	if err != nil {
		return err
	}
	c.files = files
	c.logger.Debug("file dependency registered", "name", dep.Name, "path", dep.Path, "loadTime", dep.LoadTime)
	return nil
}

// RegisterObjectDependency adds an object built from Type or Resolver.
// An ineligible registration is dropped without error.
func (c *Container) RegisterObjectDependency(dep ObjectDependency) error {
	const op = "registerObject"
	if dep.Name == "" {
		return validationf(op, "", "object dependency's name is empty")
	}
	if dep.Type == nil && dep.Resolver == nil {
		return validationf(op, dep.Name, "either provide type or resolver for your object dependency")
	}
	if dep.Type != nil && dep.Type.New == nil && dep.Resolver == nil {
		return validationf(op, dep.Name, "type %s has no constructor", dep.Type.Name)
	}
	if !c.eligible(dep.Dependency) {
		c.logger.Debug("object dependency skipped by predicate", "name", dep.Name)
		return nil
	}
	if dep.LifeCycle == "" {
		dep.LifeCycle = SingleInstance
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	objects, err := place(c.objects, &objectEntry{dep: dep}, dep.Name, dep.OverwriteExisting, op,
		func(e *objectEntry) string { return e.dep.Name })
	if err != nil {
		return err
	}
	c.objects = objects
	c.logger.Debug("object dependency registered", "name", dep.Name, "lifeCycle", dep.LifeCycle)
	return nil
}

// RegisterInstanceDependency registers a pre-built value as a SingleInstance
// object.
//
//	c.RegisterInstanceDependency(container.ObjectDependency{
//	    Dependency: container.Dependency{Name: "Config"},
//	}, cfg)
func (c *Container) RegisterInstanceDependency(dep ObjectDependency, instance any) error {
	const op = "registerInstance"
	if dep.Name == "" {
		return validationf(op, "", "object dependency's name is empty")
	}
	if instance == nil {
		return validationf(op, dep.Name, "instance may not be nil")
	}
	dep.LifeCycle = SingleInstance
	dep.Resolver = func(*Container) (any, error) { return instance, nil }
	return c.RegisterObjectDependency(dep)
}

// RegisterComponentDependency adds a UI component under its camelized name.
func (c *Container) RegisterComponentDependency(dep ComponentDependency) error {
	const op = "registerComponent"
	if dep.Type == nil {
		return validationf(op, dep.Name, "component dependency's type may not be nil")
	}
	if dep.Name == "" {
		return validationf(op, "", "component dependency's name is empty")
	}
	if !c.eligible(dep.Dependency) {
		c.logger.Debug("component dependency skipped by predicate", "name", dep.Name)
		return nil
	}
	dep.Name = Camelize(dep.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	components, err := place(c.components, dep, dep.Name, dep.OverwriteExisting, op,
		func(d ComponentDependency) string { return d.Name })
	if err != nil {
		return err
	}
	c.components = components
	return nil
}

// RegisterDirectiveDependency adds a UI directive.
func (c *Container) RegisterDirectiveDependency(dep DirectiveDependency) error {
	const op = "registerDirective"
	if dep.Type == nil {
		return validationf(op, dep.Name, "directive dependency's type may not be nil")
	}
	if dep.Name == "" {
		return validationf(op, "", "directive dependency's name is empty")
	}
	if !c.eligible(dep.Dependency) {
		c.logger.Debug("directive dependency skipped by predicate", "name", dep.Name)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	directives, err := place(c.directives, dep, dep.Name, dep.OverwriteExisting, op,
		func(d DirectiveDependency) string { return d.Name })
	if err != nil {
		return err
	}
	c.directives = directives
	return nil
}

// RegisterFormViewModelDependency adds a routable view-model under its
// camelized name. Routes with a name and no component default their
// component to the camelized route name.
func (c *Container) RegisterFormViewModelDependency(dep FormViewModelDependency) error {
	const op = "registerFormViewModel"
	if dep.Type == nil {
		return validationf(op, dep.Name, "view-model dependency's type may not be nil")
	}
	if dep.Name == "" {
		return validationf(op, "", "view-model dependency's name is empty")
	}
	if !c.eligible(dep.Dependency) {
		c.logger.Debug("view-model dependency skipped by predicate", "name", dep.Name)
		return nil
	}
	dep.Name = Camelize(dep.Name)
	dep.Routes = slices.Clone(dep.Routes)
	for i, r := range dep.Routes {
		if r.Name != "" && r.Component == "" {
			dep.Routes[i].Component = Camelize(r.Name)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	viewModels, err := place(c.viewModels, dep, dep.Name, dep.OverwriteExisting, op,
		func(d FormViewModelDependency) string { return d.Name })
	if err != nil {
		return err
	}
	c.viewModels = viewModels
	return nil
}

// place inserts rec into store: a same-named record is replaced when
// overwrite is set and is a conflict otherwise. Only the first match is ever
// replaced; a store never holds two records with the same name.
func place[T any](store []T, rec T, name string, overwrite bool, op string, nameOf func(T) string) ([]T, error) {
	idx := slices.IndexFunc(store, func(existing T) bool { return sameName(nameOf(existing), name) })
	if idx == -1 {
		return append(store, rec), nil
	}
	if !overwrite {
		return store, newError(ErrConflict, op, name, nil)
	}
	store[idx] = rec
	return store, nil
}

// ── Enumeration ──────────────────────────────────────────────────────────────

// GetAllComponentDependencies returns registered components in registration order.
func (c *Container) GetAllComponentDependencies() []ComponentDependency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.components)
}

// GetAllDirectiveDependencies returns registered directives in registration order.
func (c *Container) GetAllDirectiveDependencies() []DirectiveDependency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.directives)
}

// GetAllFormViewModelDependencies returns registered view-models in registration order.
func (c *Container) GetAllFormViewModelDependencies() []FormViewModelDependency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.viewModels)
}

// Bound reports whether an object dependency named name is registered.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.ContainsFunc(c.objects, func(e *objectEntry) bool { return sameName(e.dep.Name, name) })
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any object is resolved.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(name string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(name string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(name, instance)
	}
}
