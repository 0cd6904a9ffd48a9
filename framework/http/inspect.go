package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/km-arc/go-depmanager/framework/container"
	"github.com/km-arc/go-depmanager/framework/routing"
)

// ── Inspection API ───────────────────────────────────────────────────────────

// Inspector serves read-only views of a container's registrations, plus an
// endpoint that triggers on-demand file loads.
//
//	GET  /dependencies/files
//	GET  /dependencies/components
//	GET  /dependencies/directives
//	GET  /dependencies/view-models
//	POST /dependencies/files/{name}/load
type Inspector struct {
	Container *container.Container

	// LoadTimeout bounds how long the load endpoint waits before answering
	// 202 with the pending file. Zero waits for the request's lifetime.
	LoadTimeout time.Duration
}

// Routes mounts the inspection endpoints under /dependencies.
func (i *Inspector) Routes(r *routing.Router) {
	r.Prefix("/dependencies", func(deps *routing.Router) {
		deps.Get("/files", i.Files)
		deps.Post("/files/{name}/load", i.LoadFile)
		deps.Get("/components", i.Components)
		deps.Get("/directives", i.Directives)
		deps.Get("/view-models", i.ViewModels)
	})
}

// Files lists every registered file with its load status. The optional
// status and loadTime query parameters filter the list.
//
//	GET /dependencies/files?loadTime=Deferred&status=NotLoaded
func (i *Inspector) Files(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	status := req.Query("status")
	loadTime := req.Query("loadTime")

	files := i.Container.FileDependencies()
	out := make([]container.FileStatus, 0, len(files))
	for _, f := range files {
		if status != "" && !strings.EqualFold(status, string(f.Status)) {
			continue
		}
		if loadTime != "" && !strings.EqualFold(loadTime, string(f.LoadTime)) {
			continue
		}
		out = append(out, f)
	}
	NewResponse(w).Success(out)
}

// Components lists registered components and DTO view-models.
func (i *Inspector) Components(w http.ResponseWriter, r *http.Request) {
	deps := i.Container.GetAllComponentDependencies()
	out := make([]componentView, 0, len(deps))
	for _, d := range deps {
		out = append(out, newComponentView(d))
	}
	NewResponse(w).Success(out)
}

// Directives lists registered directives.
func (i *Inspector) Directives(w http.ResponseWriter, r *http.Request) {
	deps := i.Container.GetAllDirectiveDependencies()
	out := make([]directiveView, 0, len(deps))
	for _, d := range deps {
		out = append(out, directiveView{Name: d.Name, Type: typeName(d.Type)})
	}
	NewResponse(w).Success(out)
}

// ViewModels lists registered form view-models with their routes.
func (i *Inspector) ViewModels(w http.ResponseWriter, r *http.Request) {
	deps := i.Container.GetAllFormViewModelDependencies()
	out := make([]viewModelView, 0, len(deps))
	for _, d := range deps {
		routes := make([]routeView, 0, len(d.Routes))
		for _, rt := range d.Routes {
			routes = append(routes, routeView(rt))
		}
		out = append(out, viewModelView{componentView: newComponentView(d.ComponentDependency), Routes: routes})
	}
	NewResponse(w).Success(out)
}

// LoadFile starts (or joins) the on-demand load of a Deferred file and
// reports its status once settled. A load still pending when the wait ends
// answers 202. The wait query parameter overrides LoadTimeout.
//
//	POST /dependencies/files/charts/load?wait=2s
func (i *Inspector) LoadFile(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	res := NewResponse(w)
	name := req.Param("name")

	wait, ok := req.Duration("wait", i.LoadTimeout)
	if !ok {
		res.Error(http.StatusUnprocessableEntity, "wait must be a non-negative duration such as 500ms or 2s")
		return
	}

	future, err := i.Container.ResolveFile(r.Context(), name)
	if err != nil {
		res.DependencyError(err)
		return
	}

	ctx := r.Context()
	if wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	waitErr := future.Wait(ctx)
	status, _ := i.Container.FileDependency(name)
	view := loadView{FileStatus: status, LoadID: future.ID}
	switch {
	case waitErr == nil:
		res.Success(view)
	case ctx.Err() != nil && future.Err() == nil:
		res.Accepted(view)
	default:
		res.JSON(StatusFor(waitErr), envelope{"message": waitErr.Error(), "data": view})
	}
}

// ── Views ────────────────────────────────────────────────────────────────────

type componentView struct {
	Name         string            `json:"name"`
	Controller   string            `json:"controller"`
	ControllerAs string            `json:"controllerAs,omitempty"`
	Template     string            `json:"template,omitempty"`
	TemplateURL  string            `json:"templateUrl,omitempty"`
	Bindings     map[string]string `json:"bindings,omitempty"`
}

func newComponentView(d container.ComponentDependency) componentView {
	return componentView{
		Name:         d.Name,
		Controller:   typeName(d.Controller()),
		ControllerAs: d.ControllerAs,
		Template:     d.Template,
		TemplateURL:  d.TemplateURL,
		Bindings:     d.Bindings,
	}
}

type directiveView struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type routeView struct {
	Path      string `json:"path"`
	Name      string `json:"name,omitempty"`
	Component string `json:"component,omitempty"`
}

type viewModelView struct {
	componentView
	Routes []routeView `json:"routes"`
}

type loadView struct {
	container.FileStatus
	LoadID string `json:"loadId"`
}

func typeName(t *container.Type) string {
	if t == nil {
		return ""
	}
	return t.Name
}
