package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := New()
	err := registry.Register(" Widget ", Descriptor{
		Template: staticTemplate(`<div class="component-root"></div>`),
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, ok := registry.Descriptor("widget"); !ok {
		t.Fatal("lookup should be case and whitespace insensitive")
	}
	if _, ok := registry.Descriptor("unknown"); ok {
		t.Fatal("unknown type should miss")
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	registry := New()
	if err := registry.Register("", Descriptor{Template: staticTemplate("<div></div>")}); err == nil {
		t.Fatal("empty type should be rejected")
	}
	if err := registry.Register("x", Descriptor{}); err == nil {
		t.Fatal("nil template should be rejected")
	}
}

func TestRegistryCloneIsolation(t *testing.T) {
	registry := New()
	registry.MustRegister("a", Descriptor{Template: staticTemplate("<div></div>")})

	cloned := registry.Clone()
	cloned.MustRegister("b", Descriptor{Template: staticTemplate("<div></div>")})

	if _, ok := registry.Descriptor("b"); ok {
		t.Fatal("mutating the clone should not affect the source")
	}
	if got, want := len(cloned.Names()), 2; got != want {
		t.Fatalf("clone has %d entries, want %d", got, want)
	}
}

func TestMountAssignsIDAndRunsInit(t *testing.T) {
	registry := NewDefaultRegistry()

	fragment, err := registry.Mount(model.TypeSlider, TemplateData{ID: "slider-1"})
	if err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}

	root := dom.ByClass(fragment, "component-root")
	if got := dom.Attr(root, "id"); got != "slider-1" {
		t.Fatalf("component root id = %q, want slider-1", got)
	}
	display := dom.ByClass(fragment, "slider-value-display")
	if got := dom.Text(display); got != "50" {
		t.Fatalf("slider display = %q, want 50 after init", got)
	}
}

func TestMountUnknownType(t *testing.T) {
	registry := NewDefaultRegistry()
	if _, err := registry.Mount("no-such-type", TemplateData{}); err == nil {
		t.Fatal("unknown type should error at mount")
	}
}

func TestDefaultRegistryCoversBuiltins(t *testing.T) {
	registry := NewDefaultRegistry()
	for _, typ := range []model.ComponentType{
		model.TypeText, model.TypeSelect, model.TypeCheckbox, model.TypeRadio,
		model.TypeMatrix, model.TypeMatching, model.TypeFillInBlanks, model.TypeGraph,
	} {
		if _, ok := registry.Descriptor(typ); !ok {
			t.Fatalf("builtin %q is not registered", typ)
		}
	}
	if len(registry.Names()) < 30 {
		t.Fatalf("default registry has %d entries, want the full builtin set", len(registry.Names()))
	}
}

func TestSeqUniquifiesGeneratedIDs(t *testing.T) {
	registry := NewDefaultRegistry()

	var bufA, bufB bytes.Buffer
	descriptor, _ := registry.Descriptor(model.TypeRadio)
	if err := descriptor.Template(&bufA, TemplateData{Seq: 1}); err != nil {
		t.Fatalf("template: %v", err)
	}
	if err := descriptor.Template(&bufB, TemplateData{Seq: 2}); err != nil {
		t.Fatalf("template: %v", err)
	}

	if !strings.Contains(bufA.String(), "radio-group-1") || !strings.Contains(bufB.String(), "radio-group-2") {
		t.Fatalf("radio group names should embed the sequence: %q vs %q", bufA.String(), bufB.String())
	}
}
