package expertmodel

import (
	"testing"

	"github.com/glenrsmithjr/teach/pkg/model"
)

func TestBuildGraphPlaceholder(t *testing.T) {
	noOperator := &Step{ID: "step-card-a", Output: "a", Inputs: []InputRef{ElementRef("x")}}
	if g := BuildGraph(noOperator); !g.Placeholder {
		t.Fatal("a step without an operator renders as a placeholder")
	}
	noInputs := &Step{ID: "step-card-a", Output: "a", Operator: "add"}
	if g := BuildGraph(noInputs); !g.Placeholder {
		t.Fatal("a step without inputs renders as a placeholder")
	}
	if got := noInputsConnectors(t, noInputs); got != nil {
		t.Fatalf("placeholder graphs have no connectors: %v", got)
	}
}

func noInputsConnectors(t *testing.T, step *Step) []Connector {
	t.Helper()
	return BuildGraph(step).ComputeConnectors(map[string]model.Rect{})
}

func TestBuildGraphNodes(t *testing.T) {
	step := &Step{
		ID:       "step-card-velocity",
		Output:   "velocity",
		Operator: "divide",
		Inputs:   []InputRef{ElementRef("distance"), CustomRef("3600")},
	}

	g := BuildGraph(step)
	if g.Placeholder {
		t.Fatal("complete step should not be a placeholder")
	}
	if len(g.Inputs) != 2 {
		t.Fatalf("graph has %d input nodes, want 2", len(g.Inputs))
	}
	if g.Inputs[0].ID != "distance" || g.Inputs[0].Label != "distance" {
		t.Fatalf("element node = %+v", g.Inputs[0])
	}
	if g.Inputs[1].ID != "custom-1" || g.Inputs[1].Label != "3600" {
		t.Fatalf("custom node = %+v", g.Inputs[1])
	}
	if g.Operator.Label != "divide" || g.Output.ID != "velocity" {
		t.Fatalf("operator/output = %+v / %+v", g.Operator, g.Output)
	}
}

func TestComputeConnectors(t *testing.T) {
	step := &Step{
		ID:       "step-card-out",
		Output:   "out",
		Operator: "add",
		Inputs:   []InputRef{ElementRef("in")},
	}
	boxes := map[string]model.Rect{
		"in":       {Left: 0, Top: 0, Width: 100, Height: 40},
		"operator": {Left: 200, Top: 0, Width: 100, Height: 40},
		"out":      {Left: 400, Top: 0, Width: 100, Height: 40},
	}

	connectors := BuildGraph(step).ComputeConnectors(boxes)
	if len(connectors) != 2 {
		t.Fatalf("have %d connectors, want input->operator and operator->output", len(connectors))
	}

	first := connectors[0]
	if first.From != "in" || first.To != "operator" {
		t.Fatalf("first connector = %s -> %s", first.From, first.To)
	}
	if first.X1 != 100 || first.Y1 != 20 || first.X2 != 200 || first.Y2 != 20 {
		t.Fatalf("endpoints = (%g,%g)-(%g,%g)", first.X1, first.Y1, first.X2, first.Y2)
	}
	// Control points sit 30% into the horizontal span.
	if first.C1X != 130 || first.C2X != 170 {
		t.Fatalf("control points = %g, %g; want 130, 170", first.C1X, first.C2X)
	}
	if got := first.Path(); got != "M 100 20 C 130 20, 170 20, 200 20" {
		t.Fatalf("path = %q", got)
	}
}

func TestComputeConnectorsSkipsMissingBoxes(t *testing.T) {
	step := &Step{
		ID:       "step-card-out",
		Output:   "out",
		Operator: "add",
		Inputs:   []InputRef{ElementRef("in"), ElementRef("gone")},
	}
	boxes := map[string]model.Rect{
		"in":       {Left: 0, Top: 0, Width: 100, Height: 40},
		"operator": {Left: 200, Top: 0, Width: 100, Height: 40},
	}

	connectors := BuildGraph(step).ComputeConnectors(boxes)
	if len(connectors) != 1 {
		t.Fatalf("have %d connectors, want only the resolvable input edge", len(connectors))
	}

	// Without an operator box no connector can anchor.
	if got := BuildGraph(step).ComputeConnectors(map[string]model.Rect{}); got != nil {
		t.Fatalf("connectors without operator box = %v, want none", got)
	}
}
