// Package session defines the message channel between the builder and the
// tutoring agent: event names, wire payloads, and the Channel contract the
// rest of the engine programs against. Two transports ship with the engine:
// an in-process loopback and a Redis pub/sub adapter.
package session

import (
	"context"
	"encoding/json"
)

// Event names carried over the channel. Outbound events originate in the
// builder; inbound events originate in the agent.
const (
	// EventMessage carries chat traffic in both directions: {sender,
	// content}, where inbound content may be a typed list display.
	EventMessage = "message"
	// EventTutorCreated and EventTutorRefined carry replacement canvas HTML
	// from the agent.
	EventTutorCreated = "tutor_created"
	EventTutorRefined = "tutor_refined"
	// EventConfirmDemonstrations carries the demonstration descriptor array
	// that drives playback.
	EventConfirmDemonstrations = "confirm_demonstrations"
	// EventShowLoading and EventHideLoading toggle the busy indicator.
	EventShowLoading = "show_loading"
	EventHideLoading = "hide_loading"
	// EventUnlockTutor notifies the agent the editing surface was unlocked.
	EventUnlockTutor = "unlock_tutor"
	// EventExpertModelDefined carries the final confirmed model, emitted
	// exactly once per playback run.
	EventExpertModelDefined = "expert_model_defined"
	// EventTutorSaved notifies the agent a save completed.
	EventTutorSaved = "tutor_saved"
)

// Handler consumes one inbound event. Handlers for the same event name are
// invoked serially in registration order; no ordering holds across
// different event names beyond the confirmation handshake.
type Handler func(ctx context.Context, payload json.RawMessage)

// Channel is an ordered, bidirectional message stream keyed by event name.
type Channel interface {
	Emit(ctx context.Context, event string, payload any) error
	On(event string, handler Handler)
}

// MessagePayload is the generic chat message envelope.
type MessagePayload struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// ListContent is the inbound typed-list display: items the author confirms
// one by one.
type ListContent struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

// ConfirmationContent is the body of a list-item confirmation.
type ConfirmationContent struct {
	Items       []string `json:"items"`
	UserMessage string   `json:"user_message"`
}

// ConfirmationPayload is the outbound structured confirmation of an
// agent-provided list.
type ConfirmationPayload struct {
	MessageID string              `json:"messageId"`
	User      string              `json:"user"`
	Content   ConfirmationContent `json:"content"`
}

// UnlockPayload notifies the agent that a tutor was unlocked for editing.
type UnlockPayload struct {
	TutorID string `json:"tutor_id"`
	UserID  string `json:"user_id"`
}

// TutorHTMLPayload carries replacement canvas HTML on tutor created and
// refined events.
type TutorHTMLPayload struct {
	HTML string `json:"html"`
}
