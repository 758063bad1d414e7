package expertmodel

import (
	"fmt"
	"sort"
)

// stepCardPrefix prefixes step ids so a step maps 1:1 to its rendered card.
const stepCardPrefix = "step-card-"

// StepID derives the card id for an output field.
func StepID(outputID string) string { return stepCardPrefix + outputID }

// Builder maintains the ordered step collection and the single-editing
// invariant: at most one step is open for editing, and opening another
// force-saves the current one with whatever operator its selector holds.
type Builder struct {
	steps   []*Step
	byID    map[string]*Step
	editing *Step

	// Pending edits mirror the open card's controls until Save commits them.
	pendingOperator    string
	pendingDescription string
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{byID: make(map[string]*Step)}
}

// Steps returns the steps in card order.
func (b *Builder) Steps() []*Step {
	out := make([]*Step, len(b.steps))
	copy(out, b.steps)
	return out
}

// Step resolves a step by card id.
func (b *Builder) Step(id string) *Step { return b.byID[id] }

// StepForOutput resolves the step owning an output field.
func (b *Builder) StepForOutput(outputID string) *Step {
	return b.byID[StepID(outputID)]
}

// Editing returns the step currently open for editing, nil when none.
func (b *Builder) Editing() *Step { return b.editing }

// CreateStep opens a card for an output field. A field maps to exactly one
// step, so creating again returns the existing step.
func (b *Builder) CreateStep(outputID string) (*Step, error) {
	if outputID == "" {
		return nil, fmt.Errorf("expertmodel: output field id is required")
	}
	if existing := b.byID[StepID(outputID)]; existing != nil {
		return existing, nil
	}
	step := &Step{
		ID:     StepID(outputID),
		Output: outputID,
		State:  StateUnopened,
	}
	b.steps = append(b.steps, step)
	b.byID[step.ID] = step
	b.updateModelOrder()
	return step, nil
}

// EnterEdit opens a step for editing. If another step is mid-edit it is
// force-saved first, keeping whatever operator its selector held at that
// moment. A confirmed step re-entered here stops counting as confirmed
// until it is saved again.
func (b *Builder) EnterEdit(stepID string) error {
	step := b.byID[stepID]
	if step == nil {
		return fmt.Errorf("expertmodel: unknown step %q", stepID)
	}
	if b.editing == step {
		return nil
	}
	if b.editing != nil {
		b.save(b.editing)
	}
	b.editing = step
	step.State = StateEditing
	b.pendingOperator = step.Operator
	b.pendingDescription = step.Description
	return nil
}

// SetOperator records the operator selection on the open card. An empty
// selection is stored as-is, never rejected.
func (b *Builder) SetOperator(name string) error {
	if b.editing == nil {
		return fmt.Errorf("expertmodel: no step is being edited")
	}
	b.pendingOperator = name
	return nil
}

// SetDescription records the description text on the open card.
func (b *Builder) SetDescription(text string) error {
	if b.editing == nil {
		return fmt.Errorf("expertmodel: no step is being edited")
	}
	b.pendingDescription = text
	return nil
}

// ToggleInput toggles a field's membership in the open step's inputs, the
// modifier-click gesture. Toggling a selected field removes it.
func (b *Builder) ToggleInput(fieldID string) error {
	if b.editing == nil {
		return fmt.Errorf("expertmodel: no step is being edited")
	}
	for idx, ref := range b.editing.Inputs {
		if ref.Kind == RefElement && ref.ID == fieldID {
			b.editing.Inputs = append(b.editing.Inputs[:idx], b.editing.Inputs[idx+1:]...)
			return nil
		}
	}
	b.editing.Inputs = append(b.editing.Inputs, ElementRef(fieldID))
	return nil
}

// AddCustomInput appends a literal value to the open step's inputs,
// independent of the modifier-click mechanism.
func (b *Builder) AddCustomInput(value string) error {
	if b.editing == nil {
		return fmt.Errorf("expertmodel: no step is being edited")
	}
	b.editing.Inputs = append(b.editing.Inputs, CustomRef(value))
	return nil
}

// Save commits the open card: pending operator and description are stored
// and the step becomes confirmed.
func (b *Builder) Save() error {
	if b.editing == nil {
		return fmt.Errorf("expertmodel: no step is being edited")
	}
	b.save(b.editing)
	return nil
}

func (b *Builder) save(step *Step) {
	step.Operator = b.pendingOperator
	step.Description = b.pendingDescription
	step.State = StateConfirmed
	if b.editing == step {
		b.editing = nil
	}
	b.pendingOperator = ""
	b.pendingDescription = ""
}

// Delete removes a step and renumbers the remaining cards.
func (b *Builder) Delete(stepID string) {
	step := b.byID[stepID]
	if step == nil {
		return
	}
	if b.editing == step {
		b.editing = nil
		b.pendingOperator = ""
		b.pendingDescription = ""
	}
	delete(b.byID, stepID)
	for idx, candidate := range b.steps {
		if candidate == step {
			b.steps = append(b.steps[:idx], b.steps[idx+1:]...)
			break
		}
	}
	b.updateModelOrder()
}

// updateModelOrder recomputes every step's order from its card index so
// order always mirrors visual position. Runs after any structural change.
func (b *Builder) updateModelOrder() {
	for idx, step := range b.steps {
		step.Order = idx + 1
	}
}

// CollectFinalModelData reduces the confirmed steps to the exported model,
// sorted ascending by order. Steps mid-edit or never saved are excluded.
func (b *Builder) CollectFinalModelData() []FinalStep {
	var final []FinalStep
	for _, step := range b.steps {
		if step.State != StateConfirmed {
			continue
		}
		final = append(final, FinalStep{
			Output:      step.Output,
			Inputs:      append([]InputRef(nil), step.Inputs...),
			Operator:    step.Operator,
			Description: step.Description,
			Order:       step.Order,
		})
	}
	sort.Slice(final, func(i, j int) bool { return final[i].Order < final[j].Order })
	return final
}
