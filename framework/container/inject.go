package container

import "maps"

// ── Constructable types ──────────────────────────────────────────────────────

// Constructor builds an instance from positional arguments.
type Constructor func(args ...any) (any, error)

// Cardinality selects how an injected dependency is resolved.
type Cardinality string

const (
	Single Cardinality = "Single" // ResolveObject
	All    Cardinality = "All"    // ResolveAllObjects, injected as []any
)

// Injection is one declared constructor dependency.
type Injection struct {
	Name        string
	Cardinality Cardinality
}

// Inject declares a Single injection of name.
func Inject(name string) Injection { return Injection{Name: name, Cardinality: Single} }

// InjectAll declares an All injection of name.
func InjectAll(name string) Injection { return Injection{Name: name, Cardinality: All} }

// Type describes something the container can construct. Go has no
// constructor reflection, so every type carries an explicit constructor and
// its injection metadata.
//
//	orders := container.NewType("OrderService",
//	    func(args ...any) (any, error) {
//	        return &OrderService{Repo: args[0].(Repository), Hooks: args[1].([]any)}, nil
//	    },
//	    container.Inject("Repository"),
//	    container.InjectAll("OrderHook"),
//	)
type Type struct {
	Name    string
	New     Constructor
	Injects []Injection
	Statics map[string]any

	origin *Type
}

// NewType declares a constructable type.
func NewType(name string, ctor Constructor, injects ...Injection) *Type {
	return &Type{Name: name, New: ctor, Injects: injects}
}

// Construct builds an instance with the given explicit arguments.
func (t *Type) Construct(args ...any) (any, error) {
	return t.New(args...)
}

// Origin returns the type as declared, before any wrapping.
func (t *Type) Origin() *Type {
	if t.origin != nil {
		return t.origin
	}
	return t
}

// Is reports whether t and other describe the same declared type.
func (t *Type) Is(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Origin() == other.Origin()
}

// ── Injection binder ─────────────────────────────────────────────────────────

// Injectable wraps t so that constructing it resolves every declared
// injection in declaration order and appends the results to the explicit
// arguments. A type without injections is returned as is.
//
//	// Injects [Inject("A"), InjectAll("B")], constructed with (x, y):
//	// t.New(x, y, c.ResolveObject("A"), c.ResolveAllObjects("B"))
func (c *Container) Injectable(t *Type) (*Type, error) {
	if t == nil || t.New == nil {
		return nil, validationf("injectable", "", "type and its constructor may not be nil")
	}
	for _, inj := range t.Injects {
		if inj.Name == "" {
			return nil, validationf("injectable", t.Name, "injection name may not be empty")
		}
		if inj.Cardinality != Single && inj.Cardinality != All {
			return nil, validationf("injectable", t.Name, "unsupported cardinality %q for %s", inj.Cardinality, inj.Name)
		}
	}
	if len(t.Injects) == 0 {
		return t, nil
	}

	injects := append([]Injection(nil), t.Injects...)
	construct := t.New

	return &Type{
		Name:    t.Name,
		Injects: injects,
		Statics: maps.Clone(t.Statics),
		origin:  t.Origin(),
		New: func(args ...any) (any, error) {
			full := make([]any, 0, len(args)+len(injects))
			full = append(full, args...)
			for _, inj := range injects {
				var (
					v   any
					err error
				)
				if inj.Cardinality == All {
					v, err = c.ResolveAllObjects(inj.Name)
				} else {
					v, err = c.ResolveObject(inj.Name)
				}
				if err != nil {
					return nil, err
				}
				full = append(full, v)
			}
			return construct(full...)
		},
	}, nil
}
