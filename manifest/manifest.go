// Package manifest loads declarative route tables from YAML or TOML files
// and registers them on a mux.Router. It also exports the live table of a
// router back into the same format.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/vitalvas/waypoint/mux"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	// ErrUnsupportedFormat is returned for formats other than YAML and TOML.
	ErrUnsupportedFormat = errors.New("manifest: unsupported format")

	// ErrInvalidManifest wraps every validation failure.
	ErrInvalidManifest = errors.New("manifest: invalid")
)

// Manifest is a declarative route table.
type Manifest struct {
	// BasePath is prepended to every route.
	BasePath string `yaml:"base_path,omitempty" toml:"base_path,omitempty"`

	// HandlersNamespace is passed to Router.SetHandlersNamespace.
	HandlersNamespace string `yaml:"handlers_namespace,omitempty" toml:"handlers_namespace,omitempty"`

	Groups []Group `yaml:"groups,omitempty" toml:"groups,omitempty"`
	Routes []Route `yaml:"routes,omitempty" toml:"routes,omitempty"`
}

// Group registers its routes and nested groups inside Router.Group.
type Group struct {
	Prefix string   `yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Name   string   `yaml:"name,omitempty" toml:"name,omitempty"`
	Before []string `yaml:"before,omitempty" toml:"before,omitempty"`
	After  []string `yaml:"after,omitempty" toml:"after,omitempty"`

	Routes []Route `yaml:"routes,omitempty" toml:"routes,omitempty"`
	Groups []Group `yaml:"groups,omitempty" toml:"groups,omitempty"`
}

// Route is a single route entry. Handler and middleware entries are
// resolved by name when the manifest is applied.
type Route struct {
	Name    string            `yaml:"name,omitempty" toml:"name,omitempty"`
	Methods []string          `yaml:"methods,omitempty" toml:"methods,omitempty"`
	Path    string            `yaml:"path" toml:"path"`
	Where   map[string]string `yaml:"where,omitempty" toml:"where,omitempty"`
	Handler string            `yaml:"handler" toml:"handler"`
	Before  []string          `yaml:"before,omitempty" toml:"before,omitempty"`
	After   []string          `yaml:"after,omitempty" toml:"after,omitempty"`

	// Pattern is filled by FromRouter and ignored by Apply.
	Pattern string `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
}

// FormatFromPath returns the format matching the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads, decodes and validates the manifest file at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Decode parses data in the given format. It does not validate the result.
func Decode(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("failed to parse TOML manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return m, nil
}

// Encode serializes the manifest in the given format.
func (m *Manifest) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatTOML:
		return toml.Marshal(m)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Validate checks that every route has a path, a handler and supported
// methods, and that route names are unique once group prefixes are applied.
func (m *Manifest) Validate() error {
	v := &validator{names: make(map[string]string)}
	v.routes(m.Routes, "")
	v.groups(m.Groups, "")
	return errors.Join(v.errs...)
}

type validator struct {
	names map[string]string
	errs  []error
}

func (v *validator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidManifest}, args...)...))
}

func (v *validator) groups(groups []Group, namePrefix string) {
	for _, g := range groups {
		prefix := namePrefix + g.Name
		v.routes(g.Routes, prefix)
		v.groups(g.Groups, prefix)
	}
}

func (v *validator) routes(routes []Route, namePrefix string) {
	supported := mux.SupportedMethods()

	for _, rt := range routes {
		if strings.TrimSpace(rt.Path) == "" {
			v.fail("route %q has no path", rt.Name)
		}
		if rt.Handler == "" {
			v.fail("route %q has no handler", rt.Path)
		}
		for _, method := range rt.Methods {
			if !slices.Contains(supported, strings.ToUpper(method)) {
				v.fail("route %q uses unsupported method %q", rt.Path, method)
			}
		}

		if rt.Name == "" {
			continue
		}
		name := namePrefix + rt.Name
		if prev, ok := v.names[name]; ok {
			v.fail("route name %q used by %q and %q", name, prev, rt.Path)
			continue
		}
		v.names[name] = rt.Path
	}
}
