// Package model defines the shared data types for the tutor builder: the
// component vocabulary, canvas geometry, and the field snapshot records that
// the extractor produces and the expert-model builder consumes.
package model

// ComponentType tags a placeable component with its template and behavior.
type ComponentType string

const (
	// Text and input.
	TypeLabel       ComponentType = "label"
	TypeText        ComponentType = "text"
	TypeNumberInput ComponentType = "number-input"
	TypeTextarea    ComponentType = "textarea"
	TypeParagraph   ComponentType = "paragraph"
	TypeTextPrompt  ComponentType = "text-prompt"
	TypeDate        ComponentType = "date"
	TypeRichText    ComponentType = "rich-text"
	TypeH1          ComponentType = "h1"
	TypeH2          ComponentType = "h2"
	TypeH3          ComponentType = "h3"

	// Choice elements.
	TypeSelect     ComponentType = "select"
	TypeCheckbox   ComponentType = "checkbox"
	TypeRadio      ComponentType = "radio"
	TypeToggle     ComponentType = "toggle"
	TypeSlider     ComponentType = "slider"
	TypeFileUpload ComponentType = "file-upload"

	// Layout and media.
	TypeContainer ComponentType = "container"
	TypeTable     ComponentType = "table"
	TypeImage     ComponentType = "image"
	TypeVideo     ComponentType = "video"
	TypeAudio     ComponentType = "audio"
	TypeCode      ComponentType = "code"

	// Shapes and annotation.
	TypeShapeRect   ComponentType = "shape-rect"
	TypeShapeCircle ComponentType = "shape-circle"
	TypeLine        ComponentType = "line"
	TypeArrow       ComponentType = "arrow"

	// Interactive tasks.
	TypeMatching     ComponentType = "matching"
	TypeOrdering     ComponentType = "ordering"
	TypeCategorize   ComponentType = "categorization"
	TypeFillInBlanks ComponentType = "fill-in-blanks"

	// Math elements.
	TypeFraction  ComponentType = "fraction"
	TypeExponent  ComponentType = "exponent"
	TypeRadical   ComponentType = "radical"
	TypeSummation ComponentType = "summation"
	TypeIntegral  ComponentType = "integral"
	TypeMatrix    ComponentType = "matrix"
	TypeGraph     ComponentType = "graph"
)

// Position is a canvas coordinate in pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a component extent in pixels. Zero means content-determined.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FieldSnapshot is one normalized record in the canonical canvas state
// snapshot. Value is type-dependent: structured option lists for choice
// components, scalars for toggle/slider, composite structs for math
// components, and trimmed text for everything else.
type FieldSnapshot struct {
	ID       string        `json:"id"`
	Type     ComponentType `json:"type"`
	Editable bool          `json:"editable"`
	Value    any           `json:"value"`
}
