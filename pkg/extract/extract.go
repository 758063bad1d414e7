// Package extract walks a canvas and produces the normalized field snapshot
// list used for saving and for relationship modeling. Value extraction is
// dispatched through a registry of per-type extractor funcs so each
// component type owns its value shape.
package extract

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/canvas"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// Func reads a component's value from its root node. A nil return means the
// component has no value.
type Func func(root *html.Node) any

// Options controls one extraction pass.
type Options struct {
	// LockWhenHasValue freezes any field whose extracted value is non-empty:
	// the instance is marked locked and reported non-editable. This is the
	// only mutation extraction performs.
	LockWhenHasValue bool
}

// Registry maps component types to extractor funcs, with a fallback for
// everything unregistered.
type Registry struct {
	mu       sync.RWMutex
	funcs    map[model.ComponentType]Func
	fallback Func
}

// NewRegistry creates a registry whose fallback reads the first control's
// trimmed text.
func NewRegistry() *Registry {
	return &Registry{
		funcs:    make(map[model.ComponentType]Func),
		fallback: extractText,
	}
}

// Register associates an extractor with a component type. Existing entries
// are replaced.
func (r *Registry) Register(typ model.ComponentType, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[typ] = fn
}

// SetFallback replaces the extractor used for unregistered types.
func (r *Registry) SetFallback(fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = fn
}

func (r *Registry) lookup(typ model.ComponentType) Func {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.funcs[typ]; ok {
		return fn
	}
	return r.fallback
}

// Extract snapshots every instance on the canvas. Instances lacking both an
// id and a type are skipped. Ids prefer the component root's id, falling
// back to the wrapper id.
func (r *Registry) Extract(c *canvas.Canvas, opts Options) []model.FieldSnapshot {
	var fields []model.FieldSnapshot
	for _, inst := range c.Instances() {
		root := inst.Root()

		id := dom.Attr(root, "id")
		if id == "" {
			id = inst.ID
		}
		if id == "" && inst.Type == "" {
			continue
		}

		value := r.lookup(inst.Type)(root)
		editable := editableState(inst.Wrapper)

		if opts.LockWhenHasValue && hasValue(value) {
			lockInstance(inst)
			editable = false
		} else if inst.Locked {
			editable = false
		}

		fields = append(fields, model.FieldSnapshot{
			ID:       id,
			Type:     inst.Type,
			Editable: editable,
			Value:    value,
		})
	}
	return fields
}

// Extract runs the default registry over a canvas.
func Extract(c *canvas.Canvas, opts Options) []model.FieldSnapshot {
	return defaultRegistry.Extract(c, opts)
}

var defaultRegistry = NewDefaultRegistry()

// editableState mirrors the underlying control: disabled or readonly
// controls are not editable, contenteditable regions are.
func editableState(wrapper *html.Node) bool {
	control := dom.ByTag(wrapper, "input", "textarea", "select")
	if control != nil {
		return !dom.HasAttr(control, "disabled") && !dom.HasAttr(control, "readonly")
	}
	return dom.First(wrapper, dom.ContentEditable) != nil
}

// lockInstance marks a demonstrated field frozen: a visual class, a
// persisted attribute, and the instance flag the editor checks. Idempotent.
func lockInstance(inst *canvas.Instance) {
	inst.Locked = true
	dom.AddClass(inst.Wrapper, "locked")
	dom.SetAttr(inst.Wrapper, "data-locked", "true")
}

// hasValue decides whether a value counts as demonstrated content for
// locking purposes: non-empty text, a checked toggle, a selection, any
// checked item, or non-blank composite content.
func hasValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case float64:
		return v != 0
	case model.SelectValue:
		return v.SelectedValue != ""
	case model.RadioValue:
		return v.SelectedValue != ""
	case []model.CheckItem:
		for _, item := range v {
			if item.Checked {
				return true
			}
		}
		return false
	case model.FractionValue:
		return v.Numerator != "" || v.Denominator != ""
	case model.ExponentValue:
		return v.Base != "" || v.Power != ""
	case model.RadicalValue:
		return v.Radicand != ""
	case model.LimitsValue:
		return v.Upper != "" || v.Lower != "" || v.Expression != ""
	case model.MatrixValue:
		for _, row := range v.Data {
			for _, cell := range row {
				if strings.TrimSpace(cell) != "" {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}
