package expertmodel

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateStepIsOnePerOutput(t *testing.T) {
	b := New()

	first, err := b.CreateStep("velocity")
	if err != nil {
		t.Fatalf("CreateStep returned error: %v", err)
	}
	again, err := b.CreateStep("velocity")
	if err != nil {
		t.Fatalf("CreateStep returned error: %v", err)
	}
	if first != again {
		t.Fatal("an output field maps to exactly one step")
	}
	if first.ID != "step-card-velocity" {
		t.Fatalf("step id = %q", first.ID)
	}
	if _, err := b.CreateStep(""); err == nil {
		t.Fatal("empty output id should be rejected")
	}
}

func TestOrderMirrorsCardPosition(t *testing.T) {
	b := New()
	b.CreateStep("a")
	b.CreateStep("b")
	b.CreateStep("c")

	b.Delete(StepID("b"))

	steps := b.Steps()
	if len(steps) != 2 {
		t.Fatalf("have %d steps, want 2", len(steps))
	}
	if steps[0].Order != 1 || steps[1].Order != 2 {
		t.Fatalf("orders = %d, %d; want contiguous 1, 2", steps[0].Order, steps[1].Order)
	}
	if steps[1].Output != "c" {
		t.Fatalf("remaining step = %q, want c", steps[1].Output)
	}
}

func TestEnterEditForceSavesCurrent(t *testing.T) {
	b := New()
	first, _ := b.CreateStep("a")
	b.CreateStep("b")

	if err := b.EnterEdit(first.ID); err != nil {
		t.Fatalf("EnterEdit: %v", err)
	}
	b.SetOperator("add")
	b.SetDescription("sum the parts")

	// Opening the second card commits the first with its current selector
	// state.
	if err := b.EnterEdit(StepID("b")); err != nil {
		t.Fatalf("EnterEdit: %v", err)
	}
	if first.State != StateConfirmed {
		t.Fatalf("first step state = %v, want confirmed", first.State)
	}
	if first.Operator != "add" || first.Description != "sum the parts" {
		t.Fatalf("force-save lost pending edits: %+v", first)
	}
}

func TestPendingEditsNotVisibleUntilSave(t *testing.T) {
	b := New()
	step, _ := b.CreateStep("a")
	b.EnterEdit(step.ID)
	b.SetOperator("multiply")

	if step.Operator != "" {
		t.Fatal("operator should stay pending until save")
	}
	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if step.Operator != "multiply" || step.State != StateConfirmed {
		t.Fatalf("saved step = %+v", step)
	}
	if b.Editing() != nil {
		t.Fatal("save should close the card")
	}
}

func TestEditRequiresOpenCard(t *testing.T) {
	b := New()
	if err := b.SetOperator("add"); err == nil {
		t.Fatal("SetOperator with no open card should error")
	}
	if err := b.ToggleInput("x"); err == nil {
		t.Fatal("ToggleInput with no open card should error")
	}
	if err := b.Save(); err == nil {
		t.Fatal("Save with no open card should error")
	}
}

func TestToggleInputTwiceRemoves(t *testing.T) {
	b := New()
	step, _ := b.CreateStep("out")
	b.EnterEdit(step.ID)

	b.ToggleInput("distance")
	b.ToggleInput("time")
	b.ToggleInput("distance")

	if len(step.Inputs) != 1 || step.Inputs[0].ID != "time" {
		t.Fatalf("inputs = %+v, want only time", step.Inputs)
	}
}

func TestCustomInputsAreNotToggled(t *testing.T) {
	b := New()
	step, _ := b.CreateStep("out")
	b.EnterEdit(step.ID)

	b.AddCustomInput("3.14")
	b.ToggleInput("3.14")

	if len(step.Inputs) != 2 {
		t.Fatalf("inputs = %+v, custom literals never match element toggles", step.Inputs)
	}
}

func TestReenteredStepNotCountedUntilResaved(t *testing.T) {
	b := New()
	step, _ := b.CreateStep("out")
	b.EnterEdit(step.ID)
	b.SetOperator("add")
	b.Save()

	if got := len(b.CollectFinalModelData()); got != 1 {
		t.Fatalf("confirmed steps = %d, want 1", got)
	}

	b.EnterEdit(step.ID)
	if got := len(b.CollectFinalModelData()); got != 0 {
		t.Fatalf("a reopened step counted as confirmed: %d", got)
	}

	b.Save()
	if got := len(b.CollectFinalModelData()); got != 1 {
		t.Fatalf("resaved step missing: %d", got)
	}
}

func TestCollectFinalModelDataSortsAndFilters(t *testing.T) {
	b := New()
	for _, output := range []string{"first", "second", "third"} {
		step, _ := b.CreateStep(output)
		b.EnterEdit(step.ID)
		b.SetOperator("op-" + output)
		b.Save()
	}
	// Leave the middle card mid-edit.
	b.EnterEdit(StepID("second"))

	final := b.CollectFinalModelData()
	var outputs []string
	for _, step := range final {
		outputs = append(outputs, step.Output)
	}
	want := []string{"first", "third"}
	if diff := cmp.Diff(want, outputs); diff != "" {
		t.Fatalf("final outputs mismatch (-want +got):\n%s", diff)
	}
	if final[0].Order != 1 || final[1].Order != 3 {
		t.Fatalf("orders = %d, %d", final[0].Order, final[1].Order)
	}
}

func TestInputRefJSON(t *testing.T) {
	element, err := json.Marshal(ElementRef("distance"))
	if err != nil {
		t.Fatalf("marshal element ref: %v", err)
	}
	if got := string(element); got != `{"type":"element","id":"distance"}` {
		t.Fatalf("element ref json = %s", got)
	}

	custom, err := json.Marshal(CustomRef("9.8"))
	if err != nil {
		t.Fatalf("marshal custom ref: %v", err)
	}
	if got := string(custom); got != `{"type":"custom","value":"9.8"}` {
		t.Fatalf("custom ref json = %s", got)
	}

	var ref InputRef
	if err := json.Unmarshal([]byte(`{"id":"legacy"}`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ref.Kind != RefElement || ref.ID != "legacy" {
		t.Fatalf("untyped ref should default to element: %+v", ref)
	}
}
