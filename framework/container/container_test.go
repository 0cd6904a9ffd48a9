package container_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/km-arc/go-depmanager/framework/config"
	"github.com/km-arc/go-depmanager/framework/container"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type widget struct{ id int }

func widgetType(name string) *container.Type {
	n := 0
	return container.NewType(name, func(args ...any) (any, error) {
		n++
		return &widget{id: n}, nil
	})
}

func dep(name string) container.Dependency { return container.Dependency{Name: name} }

func overwrite(name string) container.Dependency {
	return container.Dependency{Name: name, OverwriteExisting: true}
}

func never(*config.Profile) bool { return false }

// ── Files ────────────────────────────────────────────────────────────────────

func TestRegisterFile_Defaults(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterFileDependency(container.FileDependency{
		Dependency: dep("jquery"),
		Path:       "lib/jquery",
	}))

	got, ok := c.FileDependency("JQUERY")
	require.True(t, ok)
	assert.Equal(t, container.Eager, got.LoadTime)
	assert.Equal(t, container.Script, got.Kind)
	assert.Equal(t, container.NotLoaded, got.Status)
	assert.False(t, got.FailFatal)
}

func TestRegisterFile_Validation(t *testing.T) {
	c := container.New()

	err := c.RegisterFileDependency(container.FileDependency{Path: "x"})
	assert.ErrorIs(t, err, container.ErrValidation)

	err = c.RegisterFileDependency(container.FileDependency{Dependency: dep("x")})
	assert.ErrorIs(t, err, container.ErrValidation)

	err = c.RegisterFileDependency(container.FileDependency{Dependency: dep("x"), Path: "x", Kind: "Font"})
	assert.ErrorIs(t, err, container.ErrValidation)
}

func TestRegisterFile_ConflictKeepsFirst(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterFileDependency(container.FileDependency{Dependency: dep("app"), Path: "first"}))

	err := c.RegisterFileDependency(container.FileDependency{Dependency: dep("APP"), Path: "second"})
	require.ErrorIs(t, err, container.ErrConflict)

	files := c.FileDependencies()
	require.Len(t, files, 1)
	assert.Equal(t, "first", files[0].Path)
}

func TestRegisterFile_OverwriteReplacesInPlace(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterFileDependency(container.FileDependency{Dependency: dep("a"), Path: "a"}))
	require.NoError(t, c.RegisterFileDependency(container.FileDependency{Dependency: dep("b"), Path: "b"}))
	require.NoError(t, c.RegisterFileDependency(container.FileDependency{Dependency: overwrite("A"), Path: "a2"}))

	files := c.FileDependencies()
	require.Len(t, files, 2)
	assert.Equal(t, "A", files[0].Name)
	assert.Equal(t, "a2", files[0].Path)
	assert.Equal(t, "b", files[1].Name)
}

func TestRegisterFile_IneligibleIsStillStored(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterFileDependency(container.FileDependency{
		Dependency: container.Dependency{Name: "debug-tools", Predicate: never},
		Path:       "debug",
	}))
	_, ok := c.FileDependency("debug-tools")
	assert.True(t, ok)
}

// ── Objects ──────────────────────────────────────────────────────────────────

func TestRegisterObject_RequiresTypeOrResolver(t *testing.T) {
	c := container.New()
	err := c.RegisterObjectDependency(container.ObjectDependency{Dependency: dep("x")})
	assert.ErrorIs(t, err, container.ErrValidation)

	err = c.RegisterObjectDependency(container.ObjectDependency{Type: widgetType("x")})
	assert.ErrorIs(t, err, container.ErrValidation)
}

func TestRegisterObject_Conflict(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterObjectDependency(container.ObjectDependency{Dependency: dep("Clock"), Type: widgetType("a")}))

	err := c.RegisterObjectDependency(container.ObjectDependency{Dependency: dep("clock"), Type: widgetType("b")})
	require.ErrorIs(t, err, container.ErrConflict)

	var de *container.DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "clock", de.Name)
}

func TestRegisterObject_OverwriteLeavesOneRecord(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterInstanceDependency(container.ObjectDependency{Dependency: dep("greeting")}, "hello"))
	require.NoError(t, c.RegisterInstanceDependency(container.ObjectDependency{Dependency: overwrite("Greeting")}, "bonjour"))

	all, err := c.ResolveAllObjects("greeting")
	require.NoError(t, err)
	assert.Equal(t, []any{"bonjour"}, all)
}

func TestRegisterObject_IneligibleDroppedSilently(t *testing.T) {
	c := container.New()
	err := c.RegisterObjectDependency(container.ObjectDependency{
		Dependency: container.Dependency{Name: "Profiler", Predicate: never},
		Type:       widgetType("Profiler"),
	})
	require.NoError(t, err)
	assert.False(t, c.Bound("Profiler"))

	_, err = c.ResolveObject("Profiler")
	assert.ErrorIs(t, err, container.ErrNotFound)

	all, err := c.ResolveAllObjects("Profiler")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterObject_PredicateSeesProfile(t *testing.T) {
	c := container.New(container.WithProfile(&config.Profile{Env: "production"}))
	prodOnly := func(p *config.Profile) bool { return p.IsProduction() }

	require.NoError(t, c.RegisterInstanceDependency(container.ObjectDependency{
		Dependency: container.Dependency{Name: "Mailer", Predicate: prodOnly},
	}, "smtp"))
	assert.True(t, c.Bound("mailer"))
}

func TestRegisterInstance_NilRejected(t *testing.T) {
	c := container.New()
	err := c.RegisterInstanceDependency(container.ObjectDependency{Dependency: dep("x")}, nil)
	assert.ErrorIs(t, err, container.ErrValidation)
}

func TestNew_ContainerResolvesItself(t *testing.T) {
	c := container.New()
	got, err := container.Resolve[*container.Container](c, container.ContainerName)
	require.NoError(t, err)
	assert.Same(t, c, got)
}

// ── Components / directives / view-models ────────────────────────────────────

func TestRegisterComponent_NameCamelizedAndConflict(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterComponentDependency(container.ComponentDependency{
		Dependency: dep("Customer List"),
		Type:       widgetType("CustomerList"),
	}))

	err := c.RegisterComponentDependency(container.ComponentDependency{
		Dependency: dep("customerList"),
		Type:       widgetType("Other"),
	})
	require.ErrorIs(t, err, container.ErrConflict)

	components := c.GetAllComponentDependencies()
	require.Len(t, components, 1)
	assert.Equal(t, "customerList", components[0].Name)
	assert.Equal(t, "CustomerList", components[0].Controller().Name)
}

func TestRegisterComponent_RequiresType(t *testing.T) {
	c := container.New()
	err := c.RegisterComponentDependency(container.ComponentDependency{Dependency: dep("x")})
	assert.ErrorIs(t, err, container.ErrValidation)
}

func TestRegisterDirective_ConflictAndOverwrite(t *testing.T) {
	c := container.New()
	first := widgetType("first")
	second := widgetType("second")
	require.NoError(t, c.RegisterDirectiveDependency(container.DirectiveDependency{Dependency: dep("dtoForm"), Type: first}))

	err := c.RegisterDirectiveDependency(container.DirectiveDependency{Dependency: dep("DTOFORM"), Type: second})
	require.ErrorIs(t, err, container.ErrConflict)

	require.NoError(t, c.RegisterDirectiveDependency(container.DirectiveDependency{Dependency: overwrite("DTOFORM"), Type: second}))
	directives := c.GetAllDirectiveDependencies()
	require.Len(t, directives, 1)
	assert.True(t, directives[0].Type.Is(second))
}

func TestRegisterDirective_Ineligible(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterDirectiveDependency(container.DirectiveDependency{
		Dependency: container.Dependency{Name: "x", Predicate: never},
		Type:       widgetType("x"),
	}))
	assert.Empty(t, c.GetAllDirectiveDependencies())
}

func TestRegisterFormViewModel_RoutesDefaulted(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterFormViewModelDependency(container.FormViewModelDependency{
		ComponentDependency: container.ComponentDependency{
			Dependency: dep("Orders Form"),
			Type:       widgetType("OrdersForm"),
		},
		Routes: []container.Route{
			{Path: "/", Name: "Order List"},
			{Path: "/:id", Name: "OrderDetail", Component: "detailsView"},
			{Path: "/x"},
		},
	}))

	vms := c.GetAllFormViewModelDependencies()
	require.Len(t, vms, 1)
	assert.Equal(t, "ordersForm", vms[0].Name)
	assert.Equal(t, "orderList", vms[0].Routes[0].Component)
	assert.Equal(t, "detailsView", vms[0].Routes[1].Component)
	assert.Empty(t, vms[0].Routes[2].Component)

	err := c.RegisterFormViewModelDependency(container.FormViewModelDependency{
		ComponentDependency: container.ComponentDependency{Dependency: dep("ordersForm"), Type: widgetType("x")},
	})
	assert.ErrorIs(t, err, container.ErrConflict)
}

func TestEnumeration_ReturnsCopies(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterComponentDependency(container.ComponentDependency{Dependency: dep("a"), Type: widgetType("a")}))

	got := c.GetAllComponentDependencies()
	got[0].Name = "mutated"
	assert.Equal(t, "a", c.GetAllComponentDependencies()[0].Name)
}

// ── Properties ───────────────────────────────────────────────────────────────

// Any re-casing of a registered name conflicts unless it overwrites, and the
// store never holds two records for one name.
func TestConflictPolicy_CaseInsensitiveProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_]{0,11}`).Draw(t, "name")
		upper := rapid.SliceOfN(rapid.Bool(), len(name), len(name)).Draw(t, "upper")
		doOverwrite := rapid.Bool().Draw(t, "overwrite")

		var b strings.Builder
		for i, r := range name {
			if upper[i] {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteString(strings.ToLower(string(r)))
			}
		}
		recased := b.String()

		c := container.New()
		if err := c.RegisterFileDependency(container.FileDependency{Dependency: dep(name), Path: "p1"}); err != nil {
			t.Fatalf("first registration: %v", err)
		}
		err := c.RegisterFileDependency(container.FileDependency{
			Dependency: container.Dependency{Name: recased, OverwriteExisting: doOverwrite},
			Path:       "p2",
		})

		files := c.FileDependencies()
		if len(files) != 1 {
			t.Fatalf("store holds %d records for %q", len(files), name)
		}
		if doOverwrite {
			if err != nil || files[0].Path != "p2" {
				t.Fatalf("overwrite of %q by %q: err=%v path=%s", name, recased, err, files[0].Path)
			}
			return
		}
		if err == nil || files[0].Path != "p1" {
			t.Fatalf("duplicate %q of %q accepted", recased, name)
		}
	})
}
