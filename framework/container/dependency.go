package container

import (
	"github.com/km-arc/go-depmanager/framework/config"
)

// ── Enumerations ─────────────────────────────────────────────────────────────

// LoadTime decides whether a file is loaded during bootstrap or on demand.
type LoadTime string

const (
	Eager    LoadTime = "Eager"
	Deferred LoadTime = "Deferred"
)

// ResourceKind is the kind of element a file dependency is loaded through.
type ResourceKind string

const (
	Script ResourceKind = "Script"
	Style  ResourceKind = "Style"
)

// Extension returns the file extension appended to the configured path.
func (k ResourceKind) Extension() string {
	if k == Style {
		return "css"
	}
	return "js"
}

// LoadStatus only moves forward: NotLoaded → Loading → Loaded | LoadError.
type LoadStatus string

const (
	NotLoaded LoadStatus = "NotLoaded"
	Loading   LoadStatus = "Loading"
	Loaded    LoadStatus = "Loaded"
	LoadError LoadStatus = "LoadError"
)

// Terminal reports whether no further transition is possible.
func (s LoadStatus) Terminal() bool { return s == Loaded || s == LoadError }

// LifeCycle governs how many instances an object dependency yields.
type LifeCycle string

const (
	SingleInstance LifeCycle = "SingleInstance"
	Transient      LifeCycle = "Transient"
)

// ── Records ──────────────────────────────────────────────────────────────────

// Predicate decides whether a dependency participates for the active profile.
type Predicate func(profile *config.Profile) bool

// Dependency holds the fields shared by every record kind.
type Dependency struct {
	Name              string
	Predicate         Predicate
	OverwriteExisting bool
}

// FileDependency is a script or stylesheet loaded through the page document.
// Its runtime status is tracked by the container, not on this value.
type FileDependency struct {
	Dependency
	Path        string
	LoadTime    LoadTime
	Kind        ResourceKind
	FailOnError bool
}

// Factory produces an object dependency's instance. A nil result means
// "nothing here" and lets resolution fall through.
type Factory func(c *Container) (any, error)

// ObjectDependency is a named object built from Type or Resolver.
type ObjectDependency struct {
	Dependency
	Type      *Type
	LifeCycle LifeCycle
	Resolver  Factory
}

// ComponentDependency is a UI component handed to the component framework.
type ComponentDependency struct {
	Dependency
	Type         *Type
	Template     string
	TemplateURL  string
	ControllerAs string
	Bindings     map[string]string
}

// Controller returns the type the component framework instantiates.
func (d ComponentDependency) Controller() *Type { return d.Type }

// DirectiveDependency is a UI directive handed to the component framework.
type DirectiveDependency struct {
	Dependency
	Type *Type
}

// Route is an entry in a form view-model's route table.
type Route struct {
	Path      string
	Name      string
	Component string
}

// FormViewModelDependency is a routable component.
type FormViewModelDependency struct {
	ComponentDependency
	Routes []Route
}

// FileStatus is a point-in-time view of a registered file dependency.
type FileStatus struct {
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	Kind      ResourceKind `json:"kind"`
	LoadTime  LoadTime     `json:"loadTime"`
	Status    LoadStatus   `json:"status"`
	Error     string       `json:"error,omitempty"`
	FailFatal bool         `json:"failOnError"`
}
