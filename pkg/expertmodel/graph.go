package expertmodel

import (
	"fmt"

	"github.com/glenrsmithjr/teach/pkg/model"
)

// NodeKind classifies a graph node.
type NodeKind int

const (
	NodeInput NodeKind = iota
	NodeOperator
	NodeOutput
)

// Node is one box in a step's dependency graph.
type Node struct {
	ID    string
	Kind  NodeKind
	Label string
}

// Graph is the pure layout of one step: input nodes flow into the operator
// node which flows into the output node. Placeholder graphs stand in for
// incomplete steps (no operator or no inputs).
type Graph struct {
	StepID      string
	Inputs      []Node
	Operator    Node
	Output      Node
	Placeholder bool
}

// operatorNodeID keys the operator box in the bounding-box map.
const operatorNodeID = "operator"

// BuildGraph lays out a step's dependency graph. Incomplete steps yield a
// placeholder graph with no nodes.
func BuildGraph(step *Step) Graph {
	g := Graph{StepID: step.ID}
	if step.Operator == "" || len(step.Inputs) == 0 {
		g.Placeholder = true
		return g
	}

	for idx, ref := range step.Inputs {
		node := Node{Kind: NodeInput}
		if ref.Kind == RefCustom {
			node.ID = fmt.Sprintf("custom-%d", idx)
			node.Label = ref.Value
		} else {
			node.ID = ref.ID
			node.Label = ref.ID
		}
		g.Inputs = append(g.Inputs, node)
	}
	g.Operator = Node{ID: operatorNodeID, Kind: NodeOperator, Label: step.Operator}
	g.Output = Node{ID: step.Output, Kind: NodeOutput, Label: step.Output}
	return g
}

// Connector is a cubic curve between two node boxes, exiting the source's
// right edge and entering the target's left edge.
type Connector struct {
	From, To       string
	X1, Y1, X2, Y2 float64
	C1X, C1Y       float64
	C2X, C2Y       float64
}

// curveFactor positions the control points at 30% of the horizontal span.
const curveFactor = 0.3

// connect computes one connector between two live bounding boxes.
func connect(fromID string, from model.Rect, toID string, to model.Rect) Connector {
	x1, y1 := from.Right(), from.CenterY()
	x2, y2 := to.Left, to.CenterY()
	dx := x2 - x1
	return Connector{
		From: fromID, To: toID,
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		C1X: x1 + dx*curveFactor, C1Y: y1,
		C2X: x2 - dx*curveFactor, C2Y: y2,
	}
}

// ComputeConnectors derives every connector from the live bounding boxes of
// the rendered nodes, keyed by node id. Recomputed after each render and on
// resize; nodes missing a box are skipped. Placeholder graphs have no
// connectors.
func (g Graph) ComputeConnectors(boxes map[string]model.Rect) []Connector {
	if g.Placeholder {
		return nil
	}
	opBox, ok := boxes[g.Operator.ID]
	if !ok {
		return nil
	}

	var connectors []Connector
	for _, input := range g.Inputs {
		box, ok := boxes[input.ID]
		if !ok {
			continue
		}
		connectors = append(connectors, connect(input.ID, box, g.Operator.ID, opBox))
	}
	if outBox, ok := boxes[g.Output.ID]; ok {
		connectors = append(connectors, connect(g.Operator.ID, opBox, g.Output.ID, outBox))
	}
	return connectors
}

// Path renders the connector as an SVG path definition.
func (c Connector) Path() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		c.X1, c.Y1, c.C1X, c.C1Y, c.C2X, c.C2Y, c.X2, c.Y2)
}
