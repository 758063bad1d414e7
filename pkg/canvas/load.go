package canvas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// builderPolicy sanitizes agent-provided canvas HTML. It keeps the builder
// markup vocabulary (form controls, svg overlays, media embeds) while
// stripping scripts and event handlers.
func builderPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements(
		"input", "select", "option", "textarea", "label", "button",
		"svg", "line", "path", "polyline",
		"iframe", "audio", "video", "figcaption", "figure", "sup",
	)
	p.AllowAttrs(
		"class", "id", "style", "contenteditable",
		"type", "name", "value", "placeholder", "for",
		"min", "max", "checked", "selected", "disabled", "readonly",
		"src", "alt", "controls", "frameborder", "allowfullscreen",
		"viewBox", "preserveAspectRatio", "points", "d",
		"x1", "y1", "x2", "y2", "stroke", "stroke-width", "fill",
		"width", "height",
	).Globally()
	p.AllowDataAttributes()
	p.AllowStyling()
	return p
}

// LoadHTML replaces the canvas content with agent-provided markup, the
// payload of tutor created/refined events. The markup is sanitized, parsed,
// and re-hydrated into instances; per-type initializers re-run and every
// control value is cleared so the author starts from a blank tutor.
func (c *Canvas) LoadHTML(markup string) error {
	clean := builderPolicy().Sanitize(markup)
	fragment, err := dom.ParseFragment(clean)
	if err != nil {
		return fmt.Errorf("canvas: load html: %w", err)
	}

	c.Clear()
	for _, wrapper := range dom.AllByClass(fragment, "builder-form-element") {
		inst := c.hydrate(wrapper)
		if inst == nil {
			continue
		}
		dom.Detach(wrapper)
		c.root.AppendChild(wrapper)
		c.instances = append(c.instances, inst)
	}
	c.ClearAllInputValues()
	return nil
}

// hydrate rebuilds an Instance from a persisted wrapper element. Geometry
// comes back from the style attribute, the type from the data-type
// attribute. Per-type initializers re-run so auxiliary markup matches the
// restored control state.
func (c *Canvas) hydrate(wrapper *html.Node) *Instance {
	typ := model.ComponentType(dom.Attr(wrapper, "data-type"))
	id := dom.Attr(wrapper, "id")
	if id == "" {
		c.seq++
		id = fmt.Sprintf("element-%d", c.seq)
		dom.SetAttr(wrapper, "id", id)
	}
	c.bumpSeq(id)

	inst := &Instance{
		ID:      id,
		Type:    typ,
		Wrapper: wrapper,
		Locked:  dom.HasAttr(wrapper, "data-locked"),
	}
	inst.Pos, inst.Size, inst.Rotation, inst.Z = parseStyleGeometry(dom.Attr(wrapper, "style"))
	if inst.Z > c.zTop {
		c.zTop = inst.Z
	}

	if descriptor, ok := c.registry.Descriptor(typ); ok && descriptor.Init != nil {
		if err := descriptor.Init(wrapper); err != nil {
			return nil
		}
	}
	return inst
}

// bumpSeq keeps the id counter ahead of any numeric suffix seen in loaded
// markup so fresh placements never collide with restored ids.
func (c *Canvas) bumpSeq(id string) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return
	}
	if n, err := strconv.ParseInt(id[idx+1:], 10, 64); err == nil && n > c.seq {
		c.seq = n
	}
}

// parseStyleGeometry reads position, size, rotation, and stacking order out
// of an inline style attribute. Missing declarations leave zero values.
func parseStyleGeometry(style string) (pos model.Position, size model.Size, rotation float64, z int) {
	for _, decl := range strings.Split(style, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.ToLower(key))
		value = strings.TrimSpace(value)
		switch key {
		case "left":
			pos.X = parsePx(value)
		case "top":
			pos.Y = parsePx(value)
		case "width":
			size.W = parsePx(value)
		case "height":
			size.H = parsePx(value)
		case "z-index":
			if n, err := strconv.Atoi(value); err == nil {
				z = n
			}
		case "transform":
			rotation = parseRotation(value)
		}
	}
	return pos, size, rotation, z
}

func parsePx(value string) float64 {
	value = strings.TrimSuffix(strings.TrimSpace(value), "px")
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseRotation(value string) float64 {
	start := strings.Index(value, "rotate(")
	if start < 0 {
		return 0
	}
	rest := value[start+len("rotate("):]
	end := strings.Index(rest, "deg)")
	if end < 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rest[:end]), 64)
	if err != nil {
		return 0
	}
	return v
}
