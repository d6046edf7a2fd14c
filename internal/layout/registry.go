package layout

import (
	"errors"
	"io/fs"
	"sort"
	"strings"
)

// Registry holds the embedded layouts by name.
type Registry struct {
	layouts map[string]*Layout
	names   []string
}

// NewRegistry creates a registry from already loaded layouts. Later layouts
// replace earlier ones with the same name.
func NewRegistry(layouts []*Layout) *Registry {
	r := &Registry{layouts: make(map[string]*Layout)}
	for _, l := range layouts {
		if _, dup := r.layouts[l.Name]; !dup {
			r.names = append(r.names, l.Name)
		}
		r.layouts[l.Name] = l
	}
	sort.Strings(r.names)
	return r
}

// LoadRegistry loads every embedded layout.
func LoadRegistry() (*Registry, error) {
	entries, err := fs.ReadDir(layoutFS, ".")
	if err != nil {
		return nil, err
	}

	var layouts []*Layout
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}
		l, err := Load(name)
		if err != nil {
			return nil, err
		}
		if l.Name == "" {
			l.Name = name
		}
		layouts = append(layouts, l)
	}
	if len(layouts) == 0 {
		return nil, errors.New("no embedded layouts")
	}
	return NewRegistry(layouts), nil
}

// MustLoadRegistry loads the registry, panicking on error.
func MustLoadRegistry() *Registry {
	r, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the layout with the given name, or nil if not found.
func (r *Registry) Get(name string) *Layout {
	return r.layouts[name]
}

// Names returns the layout names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Count returns the number of layouts in the registry.
func (r *Registry) Count() int {
	return len(r.names)
}
