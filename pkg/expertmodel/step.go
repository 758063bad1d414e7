// Package expertmodel implements relationship-step authoring: per output
// field, which input fields and literals feed which operator. Steps move
// through an explicit lifecycle and only confirmed steps make it into the
// exported model.
package expertmodel

import (
	"encoding/json"
	"fmt"
)

// StepState is the lifecycle position of a relationship step.
type StepState int

const (
	// StateUnopened means the step card exists but was never edited.
	StateUnopened StepState = iota
	// StateEditing means the step is the single step currently open for
	// editing.
	StateEditing
	// StateConfirmed means the step was saved and counts toward the final
	// model. Re-entering edit drops the step back to StateEditing; it only
	// counts again once re-saved.
	StateConfirmed
)

func (s StepState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unopened"
	}
}

// RefKind distinguishes field references from literal values.
type RefKind string

const (
	RefElement RefKind = "element"
	RefCustom  RefKind = "custom"
)

// InputRef is one entry in a step's input list: either a reference to a
// canvas field or a custom literal typed by the author.
type InputRef struct {
	Kind  RefKind
	ID    string
	Value string
}

// ElementRef references a canvas field by id.
func ElementRef(id string) InputRef { return InputRef{Kind: RefElement, ID: id} }

// CustomRef wraps a literal value.
func CustomRef(value string) InputRef { return InputRef{Kind: RefCustom, Value: value} }

type elementRefJSON struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type customRefJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MarshalJSON encodes the wire shape the agent expects:
// {"type":"element","id":...} or {"type":"custom","value":...}.
func (r InputRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefCustom:
		return json.Marshal(customRefJSON{Type: string(RefCustom), Value: r.Value})
	default:
		return json.Marshal(elementRefJSON{Type: string(RefElement), ID: r.ID})
	}
}

// UnmarshalJSON decodes either wire shape.
func (r *InputRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expertmodel: decode input ref: %w", err)
	}
	switch raw.Type {
	case string(RefCustom):
		*r = CustomRef(raw.Value)
	case string(RefElement), "":
		*r = ElementRef(raw.ID)
	default:
		return fmt.Errorf("expertmodel: unknown input ref type %q", raw.Type)
	}
	return nil
}

// Step is one authored relationship: output field, ordered inputs, operator,
// and the card position that defines export order.
type Step struct {
	ID          string
	Output      string
	Inputs      []InputRef
	Operator    string
	Order       int
	Description string
	State       StepState
}

// FinalStep is the reduced form of a confirmed step, the only shape
// transmitted as the expert model.
type FinalStep struct {
	Output      string     `json:"output"`
	Inputs      []InputRef `json:"inputs"`
	Operator    string     `json:"operator"`
	Description string     `json:"description,omitempty"`
	Order       int        `json:"order"`
}
