package components

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

func mount(t *testing.T, registry *Registry, typ model.ComponentType) *html.Node {
	t.Helper()
	fragment, err := registry.Mount(typ, TemplateData{Seq: 1})
	if err != nil {
		t.Fatalf("Mount(%q) returned error: %v", typ, err)
	}
	return fragment
}

func TestResizeMatrix(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeMatrix)

	dim := dom.First(root, func(n *html.Node) bool {
		return dom.HasClass(n, "matrix-dim") && dom.Attr(n, "data-dim") == "rows"
	})
	dom.SetAttr(dim, "value", "3")

	if err := ResizeMatrix(root); err != nil {
		t.Fatalf("ResizeMatrix returned error: %v", err)
	}

	grid := dom.ByClass(root, "matrix-grid")
	if got := len(dom.AllByTag(grid, "input")); got != 6 {
		t.Fatalf("grid has %d cells, want 6 for 3x2", got)
	}
	rows, cols := MatrixDims(root)
	if rows != 3 || cols != 2 {
		t.Fatalf("MatrixDims = %dx%d, want 3x2", rows, cols)
	}
}

func TestMatrixDimsDefaultToOne(t *testing.T) {
	root, err := dom.ParseFragment(`<div><input class="matrix-dim" data-dim="rows" value="bogus"></div>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	rows, cols := MatrixDims(root)
	if rows != 1 || cols != 1 {
		t.Fatalf("MatrixDims on malformed controls = %dx%d, want 1x1", rows, cols)
	}
}

func TestTableRowColumnOps(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeTable)

	if err := AddTableRow(root); err != nil {
		t.Fatalf("AddTableRow: %v", err)
	}
	if err := AddTableColumn(root); err != nil {
		t.Fatalf("AddTableColumn: %v", err)
	}

	body := dom.ByTag(root, "tbody")
	rows := dom.AllByTag(body, "tr")
	if len(rows) != 3 {
		t.Fatalf("table has %d body rows, want 3", len(rows))
	}
	headerRow := dom.ByTag(dom.ByTag(root, "thead"), "tr")
	if got := len(dom.AllByTag(headerRow, "th")); got != 3 {
		t.Fatalf("table has %d headers, want 3", got)
	}
	for idx, row := range rows {
		if got := len(dom.AllByTag(row, "td")); got != 3 {
			t.Fatalf("row %d has %d cells, want 3", idx, got)
		}
	}

	if err := RemoveTableRow(root); err != nil {
		t.Fatalf("RemoveTableRow: %v", err)
	}
	if got := len(dom.AllByTag(body, "tr")); got != 2 {
		t.Fatalf("table has %d rows after removal, want 2", got)
	}
}

func TestRemoveTableKeepsLastRowAndColumn(t *testing.T) {
	root, err := dom.ParseFragment(`<table><thead><tr><th>H</th></tr></thead><tbody><tr><td>C</td></tr></tbody></table>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if err := RemoveTableRow(root); err != nil {
		t.Fatalf("RemoveTableRow: %v", err)
	}
	if err := RemoveTableColumn(root); err != nil {
		t.Fatalf("RemoveTableColumn: %v", err)
	}
	if len(dom.AllByTag(root, "tr")) != 2 || len(dom.AllByTag(root, "td")) != 1 {
		t.Fatal("last row and column must survive removal")
	}
}

func TestSetSelectOptions(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeSelect)

	if err := SetSelectOptions(root, []string{"First Choice", "Second"}); err != nil {
		t.Fatalf("SetSelectOptions: %v", err)
	}

	var values []string
	for _, option := range dom.AllByTag(root, "option") {
		values = append(values, dom.Attr(option, "value"))
	}
	want := []string{"first-choice", "second"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("option values mismatch (-want +got):\n%s", diff)
	}
}

func TestAddChoiceOptionReusesRadioGroup(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeRadio)

	if err := AddChoiceOption(root, "radio2-1"); err != nil {
		t.Fatalf("AddChoiceOption: %v", err)
	}

	items := dom.AllByClass(root, "radio-item")
	if len(items) != 2 {
		t.Fatalf("radio group has %d items, want 2", len(items))
	}
	first := dom.ByTag(items[0], "input")
	second := dom.ByTag(items[1], "input")
	if dom.Attr(first, "name") != dom.Attr(second, "name") {
		t.Fatalf("new radio should reuse group name: %q vs %q",
			dom.Attr(first, "name"), dom.Attr(second, "name"))
	}
}

func TestAddMatchDeduplicates(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeMatching)

	if err := AddMatch(root, "L1", "R1"); err != nil {
		t.Fatalf("AddMatch: %v", err)
	}
	if err := AddMatch(root, "L1", "R1"); err != nil {
		t.Fatalf("AddMatch repeat: %v", err)
	}
	svg := dom.ByClass(root, "matching-canvas")
	if got := len(dom.AllByTag(svg, "line")); got != 1 {
		t.Fatalf("duplicate match produced %d lines, want 1", got)
	}
}

func TestUpdateMatchLines(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeMatching)
	if err := AddMatch(root, "L1", "R1"); err != nil {
		t.Fatalf("AddMatch: %v", err)
	}
	if err := AddMatch(root, "L2", "gone"); err != nil {
		t.Fatalf("AddMatch: %v", err)
	}

	boxes := map[string]model.Rect{
		"L1": {Left: 10, Top: 10, Width: 80, Height: 20},
		"R1": {Left: 200, Top: 40, Width: 80, Height: 20},
		"L2": {Left: 10, Top: 50, Width: 80, Height: 20},
	}
	UpdateMatchLines(root, boxes, model.Rect{Left: 0, Top: 0, Width: 300, Height: 200})

	svg := dom.ByClass(root, "matching-canvas")
	lines := dom.AllByTag(svg, "line")
	if len(lines) != 1 {
		t.Fatalf("dangling line should be removed, have %d lines", len(lines))
	}
	if dom.Attr(lines[0], "x1") != "90" || dom.Attr(lines[0], "x2") != "200" {
		t.Fatalf("line endpoints = (%s, %s), want (90, 200)",
			dom.Attr(lines[0], "x1"), dom.Attr(lines[0], "x2"))
	}
}

func TestCreateBlankPreservesAnswer(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeFillInBlanks)

	container := dom.ByClass(root, "fill-in-blanks-container")
	dom.SetText(container, "The capital of France is Paris.")

	if err := CreateBlank(root, "Paris"); err != nil {
		t.Fatalf("CreateBlank: %v", err)
	}

	blank := dom.ByClass(root, "blank-input")
	if blank == nil {
		t.Fatal("no blank input created")
	}
	if got := dom.Attr(blank, "placeholder"); got != "Paris" {
		t.Fatalf("placeholder = %q, want Paris", got)
	}
	if strings.Contains(dom.Text(container), "Paris") {
		t.Fatal("selected text should be replaced by the blank")
	}
}

func TestPromptVariableLifecycle(t *testing.T) {
	registry := NewDefaultRegistry()
	root := mount(t, registry, model.TypeTextPrompt)

	prompt := dom.ByClass(root, "builder-text-prompt")
	dom.SetText(prompt, "Compute velocity from distance and time")

	if err := CreatePromptVariable(root, "distance", "var-1"); err != nil {
		t.Fatalf("CreatePromptVariable: %v", err)
	}
	vars := PromptVariables(root)
	if got := vars["var-1"]; got != "distance" {
		t.Fatalf("PromptVariables = %v, want var-1=distance", vars)
	}

	if err := DeletePromptVariable(root, "var-1"); err != nil {
		t.Fatalf("DeletePromptVariable: %v", err)
	}
	if got := dom.Text(prompt); !strings.Contains(got, "distance") {
		t.Fatalf("original text should be restored, have %q", got)
	}
	if len(PromptVariables(root)) != 0 {
		t.Fatal("variable list should be empty after deletion")
	}
}
