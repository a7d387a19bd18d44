// Package adapter turns file contents into arrays that can be stored as datasets.
//
// Adapters are looked up by file extension in a Registry. The default registry maps
// tabular text (".dat") to Tabular and common raster images to Image; files with any
// other extension are left to the caller, which usually skips them.
package adapter

import (
	"path/filepath"

	"github.com/David-HERS/HDF5-Data-Migrator/container"
)

// Adapter decodes the content of a file into an array.
type Adapter interface {
	Decode(path string) (*container.Array, error)
}

// AdapterFunc lets an ordinary function act as an Adapter.
type AdapterFunc func(path string) (*container.Array, error)

func (fn AdapterFunc) Decode(path string) (*container.Array, error) {
	return fn(path)
}

// Registry maps file extensions, dot included, to adapters. Matching is case-sensitive.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// DefaultRegistry recognizes ".dat" as tabular text and ".png", ".jpg", ".jpeg" as images.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(&Tabular{Comments: DefaultComments}, ".dat")
	registry.Register(&Image{}, ".png", ".jpg", ".jpeg")
	return registry
}

// Register binds adapter to every extension given, replacing earlier bindings.
func (r *Registry) Register(adapter Adapter, exts ...string) {
	for _, ext := range exts {
		r.adapters[ext] = adapter
	}
}

// Lookup returns the adapter registered for the extension of path.
func (r *Registry) Lookup(path string) (Adapter, bool) {
	adapter, ok := r.adapters[filepath.Ext(path)]
	return adapter, ok
}

// Extensions returns the number of registered extensions.
func (r *Registry) Extensions() int {
	return len(r.adapters)
}
