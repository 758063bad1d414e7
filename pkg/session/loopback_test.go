package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoopbackDeliversToPeer(t *testing.T) {
	builder, agent := NewLoopbackPair()

	var received []MessagePayload
	agent.On(EventMessage, func(_ context.Context, payload json.RawMessage) {
		var msg MessagePayload
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		received = append(received, msg)
	})
	builder.On(EventMessage, func(_ context.Context, _ json.RawMessage) {
		t.Fatal("emitting endpoint must not hear its own event")
	})

	err := builder.Emit(context.Background(), EventMessage, MessagePayload{Sender: "user", Content: "hi"})
	if err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}

	want := []MessagePayload{{Sender: "user", Content: "hi"}}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Fatalf("received mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopbackHandlerOrder(t *testing.T) {
	builder, agent := NewLoopbackPair()

	var order []string
	agent.On(EventTutorSaved, func(_ context.Context, _ json.RawMessage) {
		order = append(order, "first")
	})
	agent.On(EventTutorSaved, func(_ context.Context, _ json.RawMessage) {
		order = append(order, "second")
	})

	if err := builder.Emit(context.Background(), EventTutorSaved, nil); err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Fatalf("handler order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopbackEmitPreservesOrdering(t *testing.T) {
	builder, agent := NewLoopbackPair()

	var events []string
	record := func(name string) Handler {
		return func(_ context.Context, _ json.RawMessage) { events = append(events, name) }
	}
	agent.On(EventShowLoading, record(EventShowLoading))
	agent.On(EventMessage, record(EventMessage))
	agent.On(EventHideLoading, record(EventHideLoading))

	ctx := context.Background()
	builder.Emit(ctx, EventShowLoading, nil)
	builder.Emit(ctx, EventMessage, MessagePayload{Sender: "user", Content: "build a tutor"})
	builder.Emit(ctx, EventHideLoading, nil)

	want := []string{EventShowLoading, EventMessage, EventHideLoading}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopbackRejectsUnmarshalablePayload(t *testing.T) {
	builder, _ := NewLoopbackPair()
	if err := builder.Emit(context.Background(), EventMessage, func() {}); err == nil {
		t.Fatal("unmarshalable payload should error")
	}
}
