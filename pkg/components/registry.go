// Package components maps component type tags to HTML fragment factories and
// post-mount behavior initializers. The canvas editor instantiates components
// exclusively through a Registry, so unknown types surface as a lookup miss
// the caller can silently ignore.
package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// TemplateData carries per-instance values into a fragment factory.
type TemplateData struct {
	// ID is assigned to the fragment's component root when non-empty.
	ID string
	// Seq uniquifies generated ids and radio group names within a canvas.
	Seq int64
}

// Template writes the component's HTML fragment into buf.
type Template func(buf *bytes.Buffer, data TemplateData) error

// Init performs post-mount wiring on the parsed fragment: normalizing matrix
// grids, syncing slider displays, registering matching lines, and so on.
type Init func(root *html.Node) error

// Descriptor bundles everything the canvas needs to place one component type.
type Descriptor struct {
	Name        string
	Template    Template
	Init        Init
	Rotatable   bool
	DefaultSize model.Size
}

// Registry tracks component descriptors keyed by type tag. Callers can
// register new components or override the defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[model.ComponentType]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[model.ComponentType]Descriptor)}
}

// Clone returns a copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with the given type tag. Existing entries
// are replaced.
func (r *Registry) Register(typ model.ComponentType, descriptor Descriptor) error {
	name := model.ComponentType(strings.ToLower(strings.TrimSpace(string(typ))))
	if name == "" {
		return fmt.Errorf("components: component type is required")
	}
	if descriptor.Template == nil {
		return fmt.Errorf("components: template for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = string(name)
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(typ model.ComponentType, descriptor Descriptor) {
	if err := r.Register(typ, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by type tag.
func (r *Registry) Descriptor(typ model.ComponentType) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[model.ComponentType(strings.ToLower(string(typ)))]
	return descriptor, ok
}

// Names returns the sorted list of registered type tags.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// Mount renders a component's fragment, parses it, and runs its initializer.
// The returned node is the fragment container; its first element child is the
// component root.
func (r *Registry) Mount(typ model.ComponentType, data TemplateData) (*html.Node, error) {
	descriptor, ok := r.Descriptor(typ)
	if !ok {
		return nil, fmt.Errorf("components: unknown component type %q", typ)
	}

	var buf bytes.Buffer
	if err := descriptor.Template(&buf, data); err != nil {
		return nil, fmt.Errorf("components: render template for %q: %w", typ, err)
	}

	fragment, err := dom.ParseFragment(buf.String())
	if err != nil {
		return nil, fmt.Errorf("components: parse fragment for %q: %w", typ, err)
	}

	if data.ID != "" {
		if root := dom.ByClass(fragment, "component-root"); root != nil {
			dom.SetAttr(root, "id", data.ID)
		}
	}

	if descriptor.Init != nil {
		if err := descriptor.Init(fragment); err != nil {
			return nil, fmt.Errorf("components: init %q: %w", typ, err)
		}
	}
	return fragment, nil
}
