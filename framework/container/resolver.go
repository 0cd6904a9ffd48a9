package container

// CustomResolver is a fallback provider consulted when no object dependency
// matches a name. A nil result passes the name on to the next resolver.
type CustomResolver interface {
	Resolve(name string) (any, error)
}

// ResolvabilityChecker is optionally implemented by a CustomResolver to
// skip names it cannot serve. An error or a panic counts as "no".
type ResolvabilityChecker interface {
	CanResolve(name string) (bool, error)
}

// ResolverFuncs adapts plain functions to CustomResolver. A nil
// CanResolveFunc means every name is attempted.
type ResolverFuncs struct {
	CanResolveFunc func(name string) (bool, error)
	ResolveFunc    func(name string) (any, error)
}

func (r ResolverFuncs) Resolve(name string) (any, error) { return r.ResolveFunc(name) }

func (r ResolverFuncs) CanResolve(name string) (bool, error) {
	if r.CanResolveFunc == nil {
		return true, nil
	}
	return r.CanResolveFunc(name)
}

// RegisterCustomObjectResolver appends r to the fallback chain.
//
//	c.RegisterCustomObjectResolver(container.ResolverFuncs{
//	    CanResolveFunc: func(name string) (bool, error) { return strings.HasPrefix(name, "svc:"), nil },
//	    ResolveFunc:    discovery.Lookup,
//	})
func (c *Container) RegisterCustomObjectResolver(r CustomResolver) error {
	const op = "registerCustomResolver"
	if r == nil {
		return validationf(op, "", "custom object resolver may not be nil")
	}
	if f, ok := r.(ResolverFuncs); ok && f.ResolveFunc == nil {
		return validationf(op, "", "custom object resolver's resolve function may not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolvers = append(c.resolvers, r)
	return nil
}

// resolveCustom walks the chain in registration order; the first non-nil
// result wins.
func (c *Container) resolveCustom(name string) (any, error) {
	c.mu.RLock()
	chain := append([]CustomResolver(nil), c.resolvers...)
	c.mu.RUnlock()

	for _, r := range chain {
		if !canResolve(r, name) {
			continue
		}
		instance, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		if instance != nil {
			c.logger.Debug("object resolved by custom resolver", "name", name)
			return instance, nil
		}
	}
	return nil, nil
}

func canResolve(r CustomResolver, name string) (ok bool) {
	checker, has := r.(ResolvabilityChecker)
	if !has {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	can, err := checker.CanResolve(name)
	return err == nil && can
}
