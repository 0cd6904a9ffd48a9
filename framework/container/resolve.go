package container

import (
	"fmt"
)

// ── Resolution ────────────────────────────────────────────────────────────────

// ResolveObject returns the first non-nil instance produced by the object
// dependencies named name. When the store has nothing, the custom resolver
// chain is consulted; when that has nothing too, ErrNotFound is returned.
//
//	repo, err := c.ResolveObject("UserRepository")
func (c *Container) ResolveObject(name string) (any, error) {
	const op = "resolveObject"
	if name == "" {
		return nil, validationf(op, "", "object dependency name is empty")
	}

	for _, e := range c.objectEntries(name) {
		instance, err := c.resolveEntry(e)
		if err != nil {
			return nil, err
		}
		if instance != nil {
			c.fireAfterResolving(e.dep.Name, instance)
			return instance, nil
		}
	}

	instance, err := c.resolveCustom(name)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, newError(ErrNotFound, op, name, nil)
	}
	c.fireAfterResolving(name, instance)
	return instance, nil
}

// ResolveAllObjects returns the instance of every object dependency named
// name. Custom resolvers are never consulted; no match yields an empty slice.
func (c *Container) ResolveAllObjects(name string) ([]any, error) {
	if name == "" {
		return nil, validationf("resolveAllObjects", "", "object dependency name is empty")
	}

	entries := c.objectEntries(name)
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		instance, err := c.resolveEntry(e)
		if err != nil {
			return nil, err
		}
		if instance != nil {
			c.fireAfterResolving(e.dep.Name, instance)
		}
		out = append(out, instance)
	}
	return out, nil
}

// objectEntries snapshots the entries named name, in registration order.
func (c *Container) objectEntries(name string) []*objectEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*objectEntry
	for _, e := range c.objects {
		if sameName(e.dep.Name, name) {
			out = append(out, e)
		}
	}
	return out
}

// resolveEntry runs the entry's resolver, synthesizing one from its type and
// lifecycle when none was given. Runs without the registry lock so
// constructors may resolve their own dependencies.
func (c *Container) resolveEntry(e *objectEntry) (any, error) {
	dep := e.dep
	if dep.Resolver != nil {
		return dep.Resolver(c)
	}

	switch dep.LifeCycle {
	case SingleInstance:
		return c.singleton(e)
	case Transient:
		return dep.Type.Construct()
	default:
		return nil, newError(ErrConfiguration, "resolveObject", dep.Name,
			fmt.Errorf("lifecycle %q is not supported for %s", dep.LifeCycle, dep.Name))
	}
}

// singleton constructs the entry's type once and caches the instance.
// A second resolution that arrives while construction is still running
// fails with ErrCircular instead of blocking, since it cannot be told apart
// from a constructor resolving its own name.
func (c *Container) singleton(e *objectEntry) (any, error) {
	e.mu.Lock()
	if e.built {
		instance := e.instance
		e.mu.Unlock()
		return instance, nil
	}
	if e.building {
		e.mu.Unlock()
		return nil, newError(ErrConfiguration, "resolveObject", e.dep.Name, ErrCircular)
	}
	e.building = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.building = false
		e.mu.Unlock()
	}()

	instance, err := e.dep.Type.Construct()
	if err != nil {
		return nil, err
	}
	if instance != nil {
		e.mu.Lock()
		e.instance = instance
		e.built = true
		e.mu.Unlock()
		c.logger.Debug("single instance created", "name", e.dep.Name)
	}
	return instance, nil
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls ResolveObject and type-asserts the result.
//
//	// Instead of: v, err := c.ResolveObject("db"); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	instance, err := c.ResolveObject(name)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, newError(ErrConfiguration, "resolve", name,
			fmt.Errorf("resolved to %T, want %T", instance, zero))
	}
	return typed, nil
}

// ResolveAll calls ResolveAllObjects and type-asserts every instance.
func ResolveAll[T any](c *Container, name string) ([]T, error) {
	instances, err := c.ResolveAllObjects(name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(instances))
	for _, instance := range instances {
		typed, ok := instance.(T)
		if !ok {
			var zero T
			return nil, newError(ErrConfiguration, "resolveAll", name,
				fmt.Errorf("resolved to %T, want %T", instance, zero))
		}
		out = append(out, typed)
	}
	return out, nil
}

// MustResolve is like Resolve but panics on error. Meant for composition
// code where a missing binding is a programming error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return typed
}
