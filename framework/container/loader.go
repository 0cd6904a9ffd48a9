package container

import (
	"context"
	"path"
	"strings"
)

// AppStartupName is the object dependency invoked once eager files are loaded.
const AppStartupName = "AppStartup"

// AppStartup is the application configuration entry point.
type AppStartup interface {
	Configuration(ctx context.Context) error
}

// AppStartupFunc adapts a function to AppStartup.
type AppStartupFunc func(ctx context.Context) error

func (f AppStartupFunc) Configuration(ctx context.Context) error { return f(ctx) }

// ── Eager bootstrap ───────────────────────────────────────────────────────────

// Init computes final file paths, loads the eager files one at a time in
// registration order and then invokes the AppStartup object exactly once.
//
// An ineligible file is skipped. A failed file is recorded as LoadError and
// skipped unless it sets FailOnError, in which case Init stops and returns
// an ErrLoad error; later files are never attempted and startup is not
// invoked. Init may only be called once per container.
func (c *Container) Init(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return newError(ErrConfiguration, "init", "", ErrAlreadyInitialized)
	}
	c.initialized = true

	var eager []*fileEntry
	for _, e := range c.files {
		e.path = c.finalPath(e.dep)
		if e.dep.LoadTime == Eager {
			eager = append(eager, e)
		}
	}
	doc := c.document
	c.mu.Unlock()

	c.logger.Info("loading eager file dependencies", "count", len(eager))
	for _, e := range eager {
		if err := c.loadEager(ctx, doc, e); err != nil {
			return err
		}
	}

	startup, err := Resolve[AppStartup](c, AppStartupName)
	if err != nil {
		return err
	}
	c.logger.Info("eager file dependencies settled, starting application")
	return startup.Configuration(ctx)
}

func (c *Container) loadEager(ctx context.Context, doc Document, e *fileEntry) error {
	const op = "init"
	name := e.dep.Name
	if !c.eligible(e.dep.Dependency) {
		c.logger.Debug("file dependency skipped by predicate", "name", name)
		return nil
	}
	if doc == nil {
		return newError(ErrConfiguration, op, name, ErrNoDocument)
	}

	c.setFileStatus(e, Loading, nil)
	err := c.load(ctx, doc, e)
	if err == nil {
		c.setFileStatus(e, Loaded, nil)
		c.logger.Debug("file dependency loaded", "name", name, "path", e.path)
		return nil
	}

	c.setFileStatus(e, LoadError, err)
	if ctx.Err() != nil || e.dep.FailOnError {
		c.logger.Error("file dependency failed, aborting bootstrap", "name", name, "path", e.path, "error", err)
		return newError(ErrLoad, op, name, err)
	}
	c.logger.Warn("file dependency failed, continuing", "name", name, "path", e.path, "error", err)
	return nil
}

// load inserts one element and waits for its signal.
func (c *Container) load(ctx context.Context, doc Document, e *fileEntry) error {
	el := NewElement(e.dep.Name, e.dep.Kind, e.path)
	if err := doc.Append(ctx, el); err != nil {
		return err
	}
	select {
	case err := <-el.Done():
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ── On-demand loading ─────────────────────────────────────────────────────────

// ResolveFile starts loading a Deferred file and returns its Future. A file
// that is already loading or settled returns the Future of that load, so
// the underlying load runs at most once.
//
//	f, err := c.ResolveFile(ctx, "charts")
//	if err != nil { ... }
//	if err := f.Wait(ctx); err != nil { ... }
//
// The load itself is detached from ctx cancellation; ctx only carries values
// to the document. Callers bound their wait with Future.Wait.
func (c *Container) ResolveFile(ctx context.Context, name string) (*Future, error) {
	const op = "resolveFile"
	if name == "" {
		return nil, validationf(op, "", "file dependency name is empty")
	}

	c.mu.Lock()
	e := c.fileEntry(name)
	if e == nil {
		c.mu.Unlock()
		return nil, newError(ErrNotFound, op, name, nil)
	}
	if e.dep.LoadTime == Eager {
		c.mu.Unlock()
		return nil, newError(ErrValidation, op, e.dep.Name, ErrEagerFile)
	}
	if e.status != NotLoaded {
		f := e.future
		c.mu.Unlock()
		return f, nil
	}
	if e.path == "" {
		e.path = c.finalPath(e.dep)
	}
	e.status = Loading
	f := newFuture()
	e.future = f
	doc := c.document
	// Init may rewrite e.path concurrently; the load works on its own copy.
	name, filePath := e.dep.Name, e.path
	c.mu.Unlock()

	fail := func(cause error) (*Future, error) {
		err := newError(ErrLoad, op, name, cause)
		c.setFileStatus(e, LoadError, err)
		f.settle(err)
		return f, nil
	}
	if !c.eligible(e.dep.Dependency) {
		return fail(ErrIneligible)
	}
	if doc == nil {
		return fail(ErrNoDocument)
	}

	c.logger.Debug("loading file dependency on demand", "name", name, "path", filePath, "load", f.ID)
	ctx = context.WithoutCancel(ctx)
	el := NewElement(name, e.dep.Kind, filePath)
	if err := doc.Append(ctx, el); err != nil {
		return fail(err)
	}

	go func() {
		if err := <-el.Done(); err != nil {
			fail(err)
			c.logger.Warn("file dependency failed", "name", name, "path", filePath, "load", f.ID, "error", err)
			return
		}
		c.setFileStatus(e, Loaded, nil)
		if c.profile.IsDebugMode() {
			c.logger.Info("file dependency loaded", "name", name, "path", filePath, "load", f.ID)
		}
		f.settle(nil)
	}()
	return f, nil
}

// ── State ─────────────────────────────────────────────────────────────────────

// FileDependencies returns a snapshot of every registered file in
// registration order.
func (c *Container) FileDependencies() []FileStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]FileStatus, 0, len(c.files))
	for _, e := range c.files {
		out = append(out, e.snapshot())
	}
	return out
}

// FileDependency returns the snapshot of the file named name.
func (c *Container) FileDependency(name string) (FileStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e := c.fileEntry(name); e != nil {
		return e.snapshot(), true
	}
	return FileStatus{}, false
}

// fileEntry finds a file by name (must hold mu).
func (c *Container) fileEntry(name string) *fileEntry {
	for _, e := range c.files {
		if sameName(e.dep.Name, name) {
			return e
		}
	}
	return nil
}

func (c *Container) setFileStatus(e *fileEntry, status LoadStatus, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.status = status
	e.err = err
}

// finalPath appends the kind's extension and, unless the path is already an
// absolute URL, prefixes the versioned base path.
func (c *Container) finalPath(dep FileDependency) string {
	p := dep.Path + "." + dep.Kind.Extension()
	if strings.HasPrefix(p, "http") {
		return p
	}
	return path.Join(c.filesBase, "V"+c.profile.Version, p)
}

func (e *fileEntry) snapshot() FileStatus {
	s := FileStatus{
		Name:      e.dep.Name,
		Path:      e.path,
		Kind:      e.dep.Kind,
		LoadTime:  e.dep.LoadTime,
		Status:    e.status,
		FailFatal: e.dep.FailOnError,
	}
	if s.Path == "" {
		s.Path = e.dep.Path
	}
	if e.err != nil {
		s.Error = e.err.Error()
	}
	return s
}
