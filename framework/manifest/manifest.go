// Package manifest reads file-dependency declarations from YAML or HCL and
// registers them with a container.
//
//	# deps.yaml
//	files:
//	  - name: jquery
//	    path: lib/jquery/jquery
//	  - name: charts
//	    path: https://cdn.example.com/charts
//	    load_time: deferred
//	    environments: [production]
//
//	# deps.hcl
//	file "jquery" {
//	  path = "lib/jquery/jquery"
//	}
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-depmanager/framework/config"
	"github.com/km-arc/go-depmanager/framework/container"
)

// ErrFormat is returned for a manifest whose extension is not recognised.
var ErrFormat = errors.New("manifest: unsupported format")

// Manifest is a list of file dependencies in registration order.
type Manifest struct {
	Files []File `yaml:"files" hcl:"file,block"`
}

// File is one declared file dependency. Enumerated fields are matched
// case-insensitively; empty values take the container defaults.
type File struct {
	Name              string   `yaml:"name" hcl:"name,label"`
	Path              string   `yaml:"path" hcl:"path"`
	LoadTime          string   `yaml:"load_time" hcl:"load_time,optional"`
	Kind              string   `yaml:"kind" hcl:"kind,optional"`
	FailOnError       bool     `yaml:"fail_on_error" hcl:"fail_on_error,optional"`
	OverwriteExisting bool     `yaml:"overwrite_existing" hcl:"overwrite_existing,optional"`
	Environments      []string `yaml:"environments" hcl:"environments,optional"`
	DebugOnly         bool     `yaml:"debug_only" hcl:"debug_only,optional"`
}

// Load reads the manifest at path, picking the decoder by extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data; filename selects the format (.yaml, .yml or .hcl).
func Parse(data []byte, filename string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".hcl":
		return ParseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, filename)
	}
}

// ParseYAML decodes a YAML manifest. Unknown keys are rejected so typos
// surface instead of silently taking defaults.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("manifest: decoding yaml: %w", err)
	}
	return &m, nil
}

// ParseHCL decodes an HCL manifest made of labelled file blocks.
func ParseHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: failed to parse HCL file %s: %w", filename, diags)
	}

	var m Manifest
	diags = gohcl.DecodeBody(file.Body, nil, &m)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: failed to decode HCL file %s: %w", filename, diags)
	}
	return &m, nil
}

// Register adds every file to c in manifest order. It stops at the first
// failed registration, leaving earlier files registered.
func (m *Manifest) Register(c *container.Container) error {
	for _, f := range m.Files {
		dep, err := f.Dependency()
		if err != nil {
			return err
		}
		if err := c.RegisterFileDependency(dep); err != nil {
			return err
		}
	}
	return nil
}

// Dependency converts f into a container file dependency.
func (f File) Dependency() (container.FileDependency, error) {
	loadTime, err := parseLoadTime(f.LoadTime)
	if err != nil {
		return container.FileDependency{}, fmt.Errorf("manifest: file %q: %w", f.Name, err)
	}
	kind, err := parseKind(f.Kind)
	if err != nil {
		return container.FileDependency{}, fmt.Errorf("manifest: file %q: %w", f.Name, err)
	}
	return container.FileDependency{
		Dependency: container.Dependency{
			Name:              f.Name,
			Predicate:         f.predicate(),
			OverwriteExisting: f.OverwriteExisting,
		},
		Path:        f.Path,
		LoadTime:    loadTime,
		Kind:        kind,
		FailOnError: f.FailOnError,
	}, nil
}

// predicate restricts the file to the listed environments and, when
// DebugOnly is set, to debug profiles. No restriction yields nil.
func (f File) predicate() container.Predicate {
	if len(f.Environments) == 0 && !f.DebugOnly {
		return nil
	}
	envs := slices.Clone(f.Environments)
	debugOnly := f.DebugOnly
	return func(p *config.Profile) bool {
		if debugOnly && !p.IsDebugMode() {
			return false
		}
		if len(envs) == 0 {
			return true
		}
		return slices.ContainsFunc(envs, func(env string) bool { return strings.EqualFold(env, p.Env) })
	}
}

func parseLoadTime(s string) (container.LoadTime, error) {
	switch {
	case s == "":
		return "", nil
	case strings.EqualFold(s, string(container.Eager)):
		return container.Eager, nil
	case strings.EqualFold(s, string(container.Deferred)):
		return container.Deferred, nil
	}
	return "", fmt.Errorf("unknown load_time %q", s)
}

func parseKind(s string) (container.ResourceKind, error) {
	switch {
	case s == "":
		return "", nil
	case strings.EqualFold(s, string(container.Script)):
		return container.Script, nil
	case strings.EqualFold(s, string(container.Style)):
		return container.Style, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}
