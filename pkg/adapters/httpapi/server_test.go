package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/glenrsmithjr/teach/pkg/api"
)

func newBackend(t *testing.T, opts ...Option) (*Server, *api.Client) {
	t.Helper()
	server := NewServer(opts...)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return server, api.New(ts.URL)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	backend, client := newBackend(t)
	ctx := context.Background()

	id, err := client.SaveTutor(ctx, api.Tutor{
		Title:   "Velocity Basics",
		Content: api.TutorContent{HTML: "<h1>Velocity</h1>"},
	})
	if err != nil {
		t.Fatalf("SaveTutor returned error: %v", err)
	}
	if id == 0 {
		t.Fatal("creation should assign an id")
	}

	stored, ok := backend.Tutor(id)
	if !ok || stored.Title != "Velocity Basics" {
		t.Fatalf("stored tutor = %+v", stored)
	}

	updatedID, err := client.SaveTutor(ctx, api.Tutor{
		ID:      id,
		Title:   "Velocity, Revised",
		Content: api.TutorContent{HTML: "<h1>Velocity v2</h1>"},
	})
	if err != nil {
		t.Fatalf("SaveTutor update returned error: %v", err)
	}
	if updatedID != id {
		t.Fatalf("update changed id: %d -> %d", id, updatedID)
	}

	stored, _ = backend.Tutor(id)
	if stored.Title != "Velocity, Revised" || stored.Content.HTML != "<h1>Velocity v2</h1>" {
		t.Fatalf("update not applied: %+v", stored)
	}
}

func TestSaveUnknownIDCreatesFresh(t *testing.T) {
	backend, client := newBackend(t)

	id, err := client.SaveTutor(context.Background(), api.Tutor{ID: 999, Title: "Orphan"})
	if err != nil {
		t.Fatalf("SaveTutor returned error: %v", err)
	}
	if id == 999 {
		t.Fatal("unknown id should be replaced, not adopted")
	}
	if _, ok := backend.Tutor(id); !ok {
		t.Fatal("fresh tutor missing from the store")
	}
}

func TestDashboardListsTutors(t *testing.T) {
	_, client := newBackend(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		if _, err := client.SaveTutor(ctx, api.Tutor{Title: title}); err != nil {
			t.Fatalf("seed save: %v", err)
		}
	}

	dashboard, err := client.FetchDashboard(ctx)
	if err != nil {
		t.Fatalf("FetchDashboard returned error: %v", err)
	}
	if len(dashboard.Tutors) != 3 {
		t.Fatalf("dashboard lists %d tutors, want 3", len(dashboard.Tutors))
	}
	if got := dashboard.Metrics["tutors"]; got != float64(3) {
		t.Fatalf("tutor metric = %v", got)
	}
}

func TestSidebarRoute(t *testing.T) {
	_, client := newBackend(t, WithSidebar("main",
		`<nav>items</nav><script>boot();</script>`))

	sidebar, err := client.FetchSidebar(context.Background(), "sidebars/main")
	if err != nil {
		t.Fatalf("FetchSidebar returned error: %v", err)
	}
	if sidebar.HTML != "<nav>items</nav>" {
		t.Fatalf("sidebar html = %q", sidebar.HTML)
	}
	if len(sidebar.Scripts) != 1 || sidebar.Scripts[0].Inline != "boot();" {
		t.Fatalf("scripts = %+v", sidebar.Scripts)
	}

	if _, err := client.FetchSidebar(context.Background(), "sidebars/missing"); err == nil {
		t.Fatal("unknown sidebar should error")
	}
}
