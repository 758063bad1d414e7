package canvas

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/glenrsmithjr/teach/pkg/model"
)

// Layout is a declarative canvas document, the YAML input the CLI renders
// into tutor HTML.
type Layout struct {
	Title string       `yaml:"title"`
	Grid  *LayoutGrid  `yaml:"grid,omitempty"`
	Items []LayoutItem `yaml:"components"`
}

// LayoutGrid mirrors the session grid config.
type LayoutGrid struct {
	Snap bool    `yaml:"snap"`
	Size float64 `yaml:"size"`
}

// LayoutItem places one component.
type LayoutItem struct {
	Type     string  `yaml:"type"`
	ID       string  `yaml:"id,omitempty"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	W        float64 `yaml:"w,omitempty"`
	H        float64 `yaml:"h,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty"`
	Value    string  `yaml:"value,omitempty"`
}

// ParseLayout decodes a YAML layout document.
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("canvas: parse layout: %w", err)
	}
	return &layout, nil
}

// Build places the layout onto a fresh canvas and returns its editor
// session. Unknown component types are skipped, matching drop semantics. A
// title entry becomes an h1 when the layout has no explicit heading.
func (l *Layout) Build(opts ...Option) (*EditorSession, error) {
	c := New(opts...)
	session := NewSession(c)
	if l.Grid != nil {
		session.SetGrid(Grid{Snap: l.Grid.Snap, Size: l.Grid.Size})
	}

	if l.Title != "" && !l.hasHeading() {
		if inst := session.PlaceComponent(model.TypeH1, 0, 0); inst != nil {
			c.SetFieldValue(inst.ID, l.Title)
		}
	}

	for _, item := range l.Items {
		inst := session.PlaceComponent(model.ComponentType(item.Type), item.X, item.Y)
		if inst == nil {
			continue
		}
		if item.W > 0 || item.H > 0 {
			inst.Size = model.Size{W: item.W, H: item.H}
		}
		inst.Rotation = item.Rotation
		if item.ID != "" {
			if err := c.SetInstanceID(inst, item.ID); err != nil {
				return nil, err
			}
		}
		if item.Value != "" {
			c.SetFieldValue(inst.ID, item.Value)
		}
	}
	session.Deselect()
	return session, nil
}

func (l *Layout) hasHeading() bool {
	for _, item := range l.Items {
		switch model.ComponentType(item.Type) {
		case model.TypeH1, model.TypeH2, model.TypeH3:
			return true
		}
	}
	return false
}
