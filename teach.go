// Package teach assembles the tutor-builder engine: a canvas document of
// HTML-backed components, the field extractor, the relationship model
// builder with demonstration playback, and the chat/session channel to the
// tutoring agent. The root package re-exports the common entry points so
// embedders can stand up a builder without importing every subpackage.
package teach

import (
	"github.com/glenrsmithjr/teach/pkg/canvas"
	"github.com/glenrsmithjr/teach/pkg/chat"
	"github.com/glenrsmithjr/teach/pkg/expertmodel"
	"github.com/glenrsmithjr/teach/pkg/extract"
	"github.com/glenrsmithjr/teach/pkg/model"
	"github.com/glenrsmithjr/teach/pkg/session"
)

// Canvas aliases the document model.
type Canvas = canvas.Canvas

// EditorSession aliases the canvas interaction context.
type EditorSession = canvas.EditorSession

// FieldSnapshot aliases the extractor's record type.
type FieldSnapshot = model.FieldSnapshot

// Channel aliases the agent channel contract.
type Channel = session.Channel

// NewCanvas creates an empty canvas with the builtin component registry.
func NewCanvas(opts ...canvas.Option) *Canvas {
	return canvas.New(opts...)
}

// NewEditorSession wraps a canvas in an interaction context.
func NewEditorSession(c *Canvas, opts ...canvas.SessionOption) *EditorSession {
	return canvas.NewSession(c, opts...)
}

// ExtractFields snapshots the canvas with the default extractor registry.
func ExtractFields(c *Canvas, opts extract.Options) []FieldSnapshot {
	return extract.Extract(c, opts)
}

// NewModelBuilder creates an empty relationship model builder.
func NewModelBuilder() *expertmodel.Builder {
	return expertmodel.New()
}

// NewPlayback prepares a demonstration playback run.
func NewPlayback(c *Canvas, b *expertmodel.Builder, emitter expertmodel.Emitter, descriptors []expertmodel.Descriptor) (*expertmodel.Playback, error) {
	return expertmodel.NewPlayback(c, b, emitter, descriptors)
}

// NewTranscript creates an empty chat transcript.
func NewTranscript() *chat.Transcript {
	return chat.NewTranscript()
}

// NewLoopbackPair creates two connected in-process channel endpoints.
func NewLoopbackPair() (*session.Loopback, *session.Loopback) {
	return session.NewLoopbackPair()
}
