package expertmodel

import (
	"context"
	"fmt"

	"github.com/glenrsmithjr/teach/pkg/canvas"
	"github.com/glenrsmithjr/teach/pkg/session"
)

// Emitter is the outbound half of the agent channel that playback needs.
type Emitter interface {
	Emit(ctx context.Context, event string, payload any) error
}

// Descriptor is one server-provided demonstration: the output field, its
// demonstrated value, the operator, and the contributing inputs.
type Descriptor struct {
	Field       string      `json:"field"`
	Value       string      `json:"value"`
	Operator    OperatorRef `json:"operator"`
	Inputs      []string    `json:"inputs"`
	Description string      `json:"description,omitempty"`
}

// OperatorRef names the operator applied by a demonstration.
type OperatorRef struct {
	Name string `json:"name"`
}

// PlaybackState is the phase of a demonstration run.
type PlaybackState int

const (
	// PlaybackIdle means Start has not run yet.
	PlaybackIdle PlaybackState = iota
	// PlaybackAwaiting means a review card is presented and progression is
	// suspended until the author confirms it. There is no timeout: an
	// unconfirmed card halts the sequence indefinitely.
	PlaybackAwaiting
	// PlaybackDone means every descriptor was confirmed and the final model
	// was emitted.
	PlaybackDone
)

// Playback replays server demonstrations one at a time, strictly in array
// order, suspending between steps on explicit author confirmation. After the
// last confirmation the assembled model is emitted exactly once, followed by
// a completion chat message.
type Playback struct {
	canvas      *canvas.Canvas
	builder     *Builder
	emitter     Emitter
	descriptors []Descriptor
	idx         int
	state       PlaybackState
}

// NewPlayback validates the descriptor sequence and prepares a run. Each
// descriptor's field must appear exactly once.
func NewPlayback(c *canvas.Canvas, b *Builder, emitter Emitter, descriptors []Descriptor) (*Playback, error) {
	if c == nil || b == nil || emitter == nil {
		return nil, fmt.Errorf("expertmodel: playback needs a canvas, builder, and emitter")
	}
	seen := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		if d.Field == "" {
			return nil, fmt.Errorf("expertmodel: demonstration descriptor is missing its field")
		}
		if seen[d.Field] {
			return nil, fmt.Errorf("expertmodel: duplicate demonstration for field %q", d.Field)
		}
		seen[d.Field] = true
	}
	return &Playback{
		canvas:      c,
		builder:     b,
		emitter:     emitter,
		descriptors: descriptors,
	}, nil
}

// State returns the playback phase.
func (p *Playback) State() PlaybackState { return p.state }

// Awaiting reports the step card id progression is suspended on, when any.
func (p *Playback) Awaiting() (string, bool) {
	if p.state != PlaybackAwaiting {
		return "", false
	}
	return StepID(p.descriptors[p.idx].Field), true
}

// Start begins the run. With no descriptors the model finalizes immediately.
func (p *Playback) Start(ctx context.Context) error {
	if p.state != PlaybackIdle {
		return fmt.Errorf("expertmodel: playback already started")
	}
	if len(p.descriptors) == 0 {
		return p.finalize(ctx)
	}
	return p.present(ctx, 0)
}

// present applies one descriptor: populate the output value, highlight the
// fields involved, optionally post the description to chat, and open a
// pre-filled review card. Progression then suspends on the card.
func (p *Playback) present(ctx context.Context, idx int) error {
	p.idx = idx
	d := p.descriptors[idx]

	p.canvas.SetFieldValue(d.Field, d.Value)
	p.canvas.Highlight(d.Field, true)
	for _, input := range d.Inputs {
		p.canvas.Highlight(input, true)
	}

	if d.Description != "" {
		payload := session.MessagePayload{Sender: "agent", Content: d.Description}
		if err := p.emitter.Emit(ctx, session.EventMessage, payload); err != nil {
			return fmt.Errorf("expertmodel: post step description: %w", err)
		}
	}

	step, err := p.builder.CreateStep(d.Field)
	if err != nil {
		return err
	}
	if err := p.builder.EnterEdit(step.ID); err != nil {
		return err
	}
	if err := p.builder.SetOperator(d.Operator.Name); err != nil {
		return err
	}
	if err := p.builder.SetDescription(d.Description); err != nil {
		return err
	}
	for _, input := range d.Inputs {
		if p.canvas.FieldNode(input) != nil {
			err = p.builder.ToggleInput(input)
		} else {
			err = p.builder.AddCustomInput(input)
		}
		if err != nil {
			return err
		}
	}

	p.state = PlaybackAwaiting
	return nil
}

// Edit reopens the suspended card for modification. The author adjusts it
// through the builder, then Confirm saves and resumes.
func (p *Playback) Edit() error {
	stepID, ok := p.Awaiting()
	if !ok {
		return fmt.Errorf("expertmodel: no demonstration is awaiting confirmation")
	}
	return p.builder.EnterEdit(stepID)
}

// Confirm finalizes the suspended card: the step is saved, highlights clear,
// the output field is disabled, and the next descriptor (if any) is
// presented. After the last card the model is assembled and emitted.
func (p *Playback) Confirm(ctx context.Context) error {
	stepID, ok := p.Awaiting()
	if !ok {
		return fmt.Errorf("expertmodel: no demonstration is awaiting confirmation")
	}
	if p.builder.Editing() == nil || p.builder.Editing().ID != stepID {
		if err := p.builder.EnterEdit(stepID); err != nil {
			return err
		}
	}
	if err := p.builder.Save(); err != nil {
		return err
	}

	d := p.descriptors[p.idx]
	p.canvas.ClearHighlights()
	p.canvas.SetFieldDisabled(d.Field, true)

	if p.idx+1 < len(p.descriptors) {
		return p.present(ctx, p.idx+1)
	}
	return p.finalize(ctx)
}

// finalize emits the confirmed model exactly once, then announces
// completion in chat.
func (p *Playback) finalize(ctx context.Context) error {
	p.state = PlaybackDone
	final := p.builder.CollectFinalModelData()
	if err := p.emitter.Emit(ctx, session.EventExpertModelDefined, final); err != nil {
		return fmt.Errorf("expertmodel: emit final model: %w", err)
	}
	done := session.MessagePayload{
		Sender:  "system",
		Content: "All relationship steps are confirmed. The expert model has been defined.",
	}
	if err := p.emitter.Emit(ctx, session.EventMessage, done); err != nil {
		return fmt.Errorf("expertmodel: announce completion: %w", err)
	}
	return nil
}
