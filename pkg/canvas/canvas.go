// Package canvas implements the tutor document model: an ordered collection
// of placed component instances whose content is parsed HTML fragments. The
// editor session layered on top (session.go) adds selection, interaction
// modes, and grid snapping; the canvas itself is pure document state.
package canvas

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/components"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// Fallback extent for components whose size is content-determined. Used for
// hit testing only, never written into rendered styles.
const (
	defaultHitWidth  = 200.0
	defaultHitHeight = 60.0
)

// Instance is one placed component. Wrapper is the element node that carries
// the builder chrome and contains the mounted fragment.
type Instance struct {
	ID       string
	Type     model.ComponentType
	Pos      model.Position
	Size     model.Size
	Rotation float64
	Z        int
	Locked   bool
	Wrapper  *html.Node
}

// Root returns the instance's component root element, the node extraction and
// field operations target. Falls back to the wrapper when the template has no
// designated root.
func (i *Instance) Root() *html.Node {
	if root := dom.ByClass(i.Wrapper, "component-root"); root != nil {
		return root
	}
	return i.Wrapper
}

// Bounds returns the instance's bounding box, substituting nominal extents
// for content-determined sizes.
func (i *Instance) Bounds() model.Rect {
	w, h := i.Size.W, i.Size.H
	if w <= 0 {
		w = defaultHitWidth
	}
	if h <= 0 {
		h = defaultHitHeight
	}
	return model.Rect{Left: i.Pos.X, Top: i.Pos.Y, Width: w, Height: h}
}

// Canvas owns the document tree and the placed instances, in placement order.
type Canvas struct {
	registry  *components.Registry
	root      *html.Node
	instances []*Instance
	seq       int64
	zTop      int
}

// Option configures a canvas.
type Option func(*Canvas)

// WithRegistry swaps the component registry used for placement and
// re-hydration.
func WithRegistry(registry *components.Registry) Option {
	return func(c *Canvas) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// New creates an empty canvas backed by the default component registry.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		registry: components.NewDefaultRegistry(),
		root:     dom.NewElement("div", html.Attribute{Key: "class", Val: "form-builder-canvas"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry exposes the canvas's component registry.
func (c *Canvas) Registry() *components.Registry { return c.registry }

// Instances returns the placed instances in placement order.
func (c *Canvas) Instances() []*Instance {
	out := make([]*Instance, len(c.instances))
	copy(out, c.instances)
	return out
}

// InstanceByID resolves an instance by wrapper id or component-root id.
func (c *Canvas) InstanceByID(id string) *Instance {
	if id == "" {
		return nil
	}
	for _, inst := range c.instances {
		if inst.ID == id || dom.Attr(inst.Root(), "id") == id {
			return inst
		}
	}
	return nil
}

// InstanceAt hit-tests a canvas point, preferring the topmost instance.
func (c *Canvas) InstanceAt(pos model.Position) *Instance {
	var hit *Instance
	for _, inst := range c.instances {
		box := inst.Bounds()
		if pos.X < box.Left || pos.X > box.Right() || pos.Y < box.Top || pos.Y > box.Bottom() {
			continue
		}
		if hit == nil || inst.Z >= hit.Z {
			hit = inst
		}
	}
	return hit
}

// Place mounts a component of the given type at a canvas position. Unknown
// types and template failures are silent no-ops, returning nil. Dropping a
// label is special-cased: it attaches to an existing field wrapper lacking
// one instead of creating a freestanding instance.
func (c *Canvas) Place(typ model.ComponentType, pos model.Position) *Instance {
	if typ == model.TypeLabel {
		c.attachLabel(pos)
		return nil
	}

	descriptor, ok := c.registry.Descriptor(typ)
	if !ok {
		return nil
	}

	c.seq++
	fragment, err := c.registry.Mount(typ, components.TemplateData{Seq: c.seq})
	if err != nil {
		return nil
	}

	c.zTop++
	inst := &Instance{
		ID:   fmt.Sprintf("element-%d", c.seq),
		Type: typ,
		Pos:  pos,
		Size: descriptor.DefaultSize,
		Z:    c.zTop,
	}
	inst.Wrapper = c.buildWrapper(inst, fragment, descriptor.Rotatable)
	c.root.AppendChild(inst.Wrapper)
	c.instances = append(c.instances, inst)
	return inst
}

// buildWrapper assembles the builder chrome around a mounted fragment:
// action buttons, the fragment content, and resize/rotate handles.
func (c *Canvas) buildWrapper(inst *Instance, fragment *html.Node, rotatable bool) *html.Node {
	wrapper := dom.NewElement("div",
		html.Attribute{Key: "class", Val: "builder-form-element"},
		html.Attribute{Key: "id", Val: inst.ID},
		html.Attribute{Key: "data-type", Val: string(inst.Type)},
	)

	actions := dom.NewElement("div", html.Attribute{Key: "class", Val: "builder-element-actions"})
	editID := dom.NewElement("button", html.Attribute{Key: "class", Val: "edit-id-btn"})
	dom.SetText(editID, "ID")
	remove := dom.NewElement("button", html.Attribute{Key: "class", Val: "delete-btn"})
	dom.SetText(remove, "×")
	actions.AppendChild(editID)
	actions.AppendChild(remove)
	wrapper.AppendChild(actions)

	content := dom.NewElement("div", html.Attribute{Key: "class", Val: "builder-element-content"})
	for fragment.FirstChild != nil {
		child := fragment.FirstChild
		fragment.RemoveChild(child)
		content.AppendChild(child)
	}
	wrapper.AppendChild(content)

	wrapper.AppendChild(dom.NewElement("div", html.Attribute{Key: "class", Val: "resize-handle"}))
	if rotatable {
		wrapper.AppendChild(dom.NewElement("div", html.Attribute{Key: "class", Val: "rotate-handle"}))
	}
	return wrapper
}

// attachLabel implements the label drop rule: only a field wrapper without an
// existing label accepts it. The control gets a generated id when it has
// none. Anywhere else the drop is a silent no-op.
func (c *Canvas) attachLabel(pos model.Position) {
	target := c.InstanceAt(pos)
	if target == nil || dom.ByTag(target.Wrapper, "label") != nil {
		return
	}
	control := dom.ByTag(target.Wrapper, "input", "textarea", "select")
	if control == nil {
		return
	}

	id := dom.Attr(control, "id")
	if id == "" {
		c.seq++
		id = fmt.Sprintf("field-%d", c.seq)
		dom.SetAttr(control, "id", id)
	}

	label := dom.NewElement("label",
		html.Attribute{Key: "for", Val: id},
		html.Attribute{Key: "contenteditable", Val: "true"},
	)
	dom.SetText(label, "Label:")
	content := dom.ByClass(target.Wrapper, "builder-element-content")
	if content == nil {
		content = target.Wrapper
	}
	if content.FirstChild != nil {
		content.InsertBefore(label, content.FirstChild)
	} else {
		content.AppendChild(label)
	}
}

// Remove deletes an instance from the canvas.
func (c *Canvas) Remove(inst *Instance) {
	if inst == nil {
		return
	}
	for idx, candidate := range c.instances {
		if candidate == inst {
			dom.Detach(inst.Wrapper)
			c.instances = append(c.instances[:idx], c.instances[idx+1:]...)
			return
		}
	}
}

// Clear removes every instance.
func (c *Canvas) Clear() {
	dom.RemoveChildren(c.root)
	c.instances = nil
}

// Empty reports whether the canvas holds no non-decorative content, the
// check that drives the placeholder instruction.
func (c *Canvas) Empty() bool {
	for child := c.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if dom.HasClass(child, "canvas-placeholder") || dom.HasClass(child, "grid-overlay") {
			continue
		}
		return false
	}
	return true
}

// Title returns the text of the first h1 on the canvas, or a default when
// the tutor has no heading yet.
func (c *Canvas) Title() string {
	if h1 := dom.ByTag(c.root, "h1"); h1 != nil {
		if title := strings.TrimSpace(dom.Text(h1)); title != "" {
			return title
		}
	}
	return "Untitled Tutor"
}

// SetInstanceID renames an instance, keeping the wrapper id in sync.
func (c *Canvas) SetInstanceID(inst *Instance, id string) error {
	id = strings.TrimSpace(id)
	if inst == nil {
		return fmt.Errorf("canvas: no instance selected")
	}
	if id == "" {
		return fmt.Errorf("canvas: identifier is required")
	}
	if existing := c.InstanceByID(id); existing != nil && existing != inst {
		return fmt.Errorf("canvas: identifier %q is already in use", id)
	}
	inst.ID = id
	dom.SetAttr(inst.Wrapper, "id", id)
	return nil
}

// FieldNode resolves a field id to its node anywhere in the document,
// matching either a component root or a wrapper.
func (c *Canvas) FieldNode(id string) *html.Node {
	return dom.ByID(c.root, id)
}

// SetFieldValue writes a displayed value into the field's primary control:
// the value attribute for inputs, text content for textareas and editable
// regions. Unknown ids are ignored.
func (c *Canvas) SetFieldValue(id, value string) {
	node := c.FieldNode(id)
	if node == nil {
		return
	}
	if control := dom.ByTag(node, "input"); control != nil {
		dom.SetAttr(control, "value", value)
		return
	}
	if control := dom.ByTag(node, "textarea"); control != nil {
		dom.SetText(control, value)
		return
	}
	if editable := dom.First(node, dom.ContentEditable); editable != nil {
		dom.SetText(editable, value)
		return
	}
	dom.SetText(node, value)
}

// SetFieldDisabled toggles the disabled attribute on the field's controls.
func (c *Canvas) SetFieldDisabled(id string, disabled bool) {
	node := c.FieldNode(id)
	if node == nil {
		return
	}
	for _, control := range dom.AllByTag(node, "input", "textarea", "select") {
		if disabled {
			dom.SetAttr(control, "disabled", "")
		} else {
			dom.RemoveAttr(control, "disabled")
		}
	}
}

// Highlight toggles the demonstration highlight on the instance containing
// the given field id.
func (c *Canvas) Highlight(id string, on bool) {
	inst := c.InstanceByID(id)
	if inst == nil {
		return
	}
	if on {
		dom.AddClass(inst.Wrapper, "demonstration-highlight")
	} else {
		dom.RemoveClass(inst.Wrapper, "demonstration-highlight")
	}
}

// ClearHighlights removes the demonstration highlight everywhere.
func (c *Canvas) ClearHighlights() {
	for _, node := range dom.AllByClass(c.root, "demonstration-highlight") {
		dom.RemoveClass(node, "demonstration-highlight")
	}
}

// ClearAllInputValues resets every control on the canvas: input values,
// textarea text, option selection, and check states.
func (c *Canvas) ClearAllInputValues() {
	for _, input := range dom.AllByTag(c.root, "input") {
		switch dom.Attr(input, "type") {
		case "checkbox", "radio":
			dom.RemoveAttr(input, "checked")
		default:
			dom.RemoveAttr(input, "value")
		}
	}
	for _, area := range dom.AllByTag(c.root, "textarea") {
		dom.RemoveChildren(area)
	}
	for _, option := range dom.AllByTag(c.root, "option") {
		dom.RemoveAttr(option, "selected")
	}
}
