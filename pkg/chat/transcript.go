// Package chat models the builder-side conversation transcript: plain text
// bubbles, agent list displays with per-item editing, and the typing
// indicator. The transcript is presentation state; transport lives in
// pkg/session.
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/glenrsmithjr/teach/pkg/session"
)

// Kind distinguishes message presentations.
type Kind int

const (
	// KindText is a plain chat bubble.
	KindText Kind = iota
	// KindList is an agent-provided item list the author reviews and
	// confirms item by item.
	KindList
)

// Message is one transcript entry. List messages stay editable until
// confirmed.
type Message struct {
	ID        string
	Sender    string
	Kind      Kind
	Text      string
	Items     []string
	Confirmed bool
}

// Transcript is the ordered conversation history.
type Transcript struct {
	messages []*Message
	typing   bool
	nextID   int
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Messages returns the history in arrival order.
func (t *Transcript) Messages() []*Message {
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Message resolves an entry by id.
func (t *Transcript) Message(id string) *Message {
	for _, msg := range t.messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// SetTyping toggles the agent typing indicator.
func (t *Transcript) SetTyping(on bool) { t.typing = on }

// Typing reports whether the typing indicator is shown.
func (t *Transcript) Typing() bool { return t.typing }

// AddText appends a plain message.
func (t *Transcript) AddText(sender, text string) *Message {
	msg := &Message{ID: t.id(), Sender: sender, Kind: KindText, Text: text}
	t.messages = append(t.messages, msg)
	return msg
}

// AddList appends an editable list display.
func (t *Transcript) AddList(sender string, items []string) *Message {
	msg := &Message{
		ID:     t.id(),
		Sender: sender,
		Kind:   KindList,
		Items:  append([]string(nil), items...),
	}
	t.messages = append(t.messages, msg)
	return msg
}

func (t *Transcript) id() string {
	t.nextID++
	return fmt.Sprintf("msg-%d", t.nextID)
}

// editableList resolves a list message that is still open for editing.
func (t *Transcript) editableList(id string) (*Message, error) {
	msg := t.Message(id)
	if msg == nil {
		return nil, fmt.Errorf("chat: unknown message %q", id)
	}
	if msg.Kind != KindList {
		return nil, fmt.Errorf("chat: message %q is not a list", id)
	}
	if msg.Confirmed {
		return nil, fmt.Errorf("chat: message %q is already confirmed", id)
	}
	return msg, nil
}

// EditItem rewrites one list item.
func (t *Transcript) EditItem(id string, index int, text string) error {
	msg, err := t.editableList(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(msg.Items) {
		return fmt.Errorf("chat: item %d out of range for message %q", index, id)
	}
	msg.Items[index] = text
	return nil
}

// DeleteItem removes one list item.
func (t *Transcript) DeleteItem(id string, index int) error {
	msg, err := t.editableList(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(msg.Items) {
		return fmt.Errorf("chat: item %d out of range for message %q", index, id)
	}
	msg.Items = append(msg.Items[:index], msg.Items[index+1:]...)
	return nil
}

// AddItem appends a list item.
func (t *Transcript) AddItem(id, text string) error {
	msg, err := t.editableList(id)
	if err != nil {
		return err
	}
	msg.Items = append(msg.Items, text)
	return nil
}

// Confirm freezes a list message and produces the structured confirmation
// payload sent back to the agent.
func (t *Transcript) Confirm(id, user, userMessage string) (session.ConfirmationPayload, error) {
	msg, err := t.editableList(id)
	if err != nil {
		return session.ConfirmationPayload{}, err
	}
	msg.Confirmed = true
	return session.ConfirmationPayload{
		MessageID: msg.ID,
		User:      user,
		Content: session.ConfirmationContent{
			Items:       append([]string(nil), msg.Items...),
			UserMessage: userMessage,
		},
	}, nil
}

// inboundMessage is the wire shape of an inbound chat event: content is
// either a plain string or a typed list object.
type inboundMessage struct {
	Sender  string          `json:"sender"`
	Content json.RawMessage `json:"content"`
}

// Receive decodes an inbound message payload and appends it to the
// transcript as the appropriate kind.
func (t *Transcript) Receive(payload json.RawMessage) (*Message, error) {
	var raw inboundMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("chat: decode message: %w", err)
	}

	var text string
	if err := json.Unmarshal(raw.Content, &text); err == nil {
		return t.AddText(raw.Sender, text), nil
	}

	var list session.ListContent
	if err := json.Unmarshal(raw.Content, &list); err != nil || list.Type != "list" {
		return nil, fmt.Errorf("chat: unsupported message content from %q", raw.Sender)
	}
	return t.AddList(raw.Sender, list.Items), nil
}
