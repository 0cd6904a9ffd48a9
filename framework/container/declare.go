package container

// Declarative registration. Each Declare* call runs the injection binder on
// t before registering it, so types that declare injections get their
// dependencies appended on construction. The Register* methods store what
// they are given and never wrap.

// DeclareObject registers t as the object dependency described by dep.
//
//	c.DeclareObject(container.ObjectDependency{
//	    Dependency: container.Dependency{Name: "OrderService"},
//	    LifeCycle:  container.Transient,
//	}, container.NewType("OrderService", newOrderService, container.Inject("Repository")))
func (c *Container) DeclareObject(dep ObjectDependency, t *Type) error {
	wrapped, err := c.Injectable(t)
	if err != nil {
		return err
	}
	dep.Type = wrapped
	return c.RegisterObjectDependency(dep)
}

// DeclareDtoRules registers a validation-rules type. Rules are always Transient.
func (c *Container) DeclareDtoRules(dep ObjectDependency, t *Type) error {
	dep.LifeCycle = Transient
	return c.DeclareObject(dep, t)
}

// DeclareComponent registers t as a UI component.
func (c *Container) DeclareComponent(dep ComponentDependency, t *Type) error {
	wrapped, err := c.Injectable(t)
	if err != nil {
		return err
	}
	dep.Type = wrapped
	return c.RegisterComponentDependency(dep)
}

// DeclareDtoViewModel registers a DTO view-model; it lives with the components.
func (c *Container) DeclareDtoViewModel(dep ComponentDependency, t *Type) error {
	return c.DeclareComponent(dep, t)
}

// DeclareDirective registers t as a UI directive.
func (c *Container) DeclareDirective(dep DirectiveDependency, t *Type) error {
	wrapped, err := c.Injectable(t)
	if err != nil {
		return err
	}
	dep.Type = wrapped
	return c.RegisterDirectiveDependency(dep)
}

// DeclareFormViewModel registers t as a routable form view-model.
func (c *Container) DeclareFormViewModel(dep FormViewModelDependency, t *Type) error {
	wrapped, err := c.Injectable(t)
	if err != nil {
		return err
	}
	dep.Type = wrapped
	return c.RegisterFormViewModelDependency(dep)
}
