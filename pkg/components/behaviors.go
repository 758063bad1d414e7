package components

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// Behavior functions implement per-type post-mount wiring. They operate on a
// mounted fragment (or the wrapper that contains it) and keep auxiliary
// markup in sync with control values, mirroring what the interactive builder
// does after placing an element.

// InitSlider syncs the value display span with the range input's value.
func InitSlider(root *html.Node) error {
	slider := dom.First(root, func(n *html.Node) bool {
		return dom.IsElement(n, "input") && dom.Attr(n, "type") == "range"
	})
	display := dom.ByClass(root, "slider-value-display")
	if slider == nil || display == nil {
		return fmt.Errorf("components: slider fragment is missing its range input or display")
	}
	dom.SetText(display, dom.Attr(slider, "value"))
	return nil
}

// SetSliderValue updates the range input and its display together.
func SetSliderValue(root *html.Node, value float64) error {
	slider := dom.First(root, func(n *html.Node) bool {
		return dom.IsElement(n, "input") && dom.Attr(n, "type") == "range"
	})
	if slider == nil {
		return fmt.Errorf("components: slider fragment has no range input")
	}
	dom.SetAttr(slider, "value", strconv.FormatFloat(value, 'f', -1, 64))
	return InitSlider(root)
}

// ResizeMatrix rebuilds the matrix grid to match the row/column dimension
// controls. Existing cell values are discarded, matching the builder's
// behavior when dimensions change.
func ResizeMatrix(root *html.Node) error {
	grid := dom.ByClass(root, "matrix-grid")
	if grid == nil {
		return fmt.Errorf("components: matrix fragment has no grid")
	}
	rows := matrixDim(root, "rows")
	cols := matrixDim(root, "cols")

	dom.RemoveChildren(grid)
	for i := 0; i < rows*cols; i++ {
		cell := dom.NewElement("input",
			html.Attribute{Key: "type", Val: "text"},
			html.Attribute{Key: "class", Val: "math-input"},
		)
		grid.AppendChild(cell)
	}
	return nil
}

// MatrixDims reads the explicit row/column counts from the dimension
// controls, defaulting to 1 on malformed input.
func MatrixDims(root *html.Node) (rows, cols int) {
	return matrixDim(root, "rows"), matrixDim(root, "cols")
}

func matrixDim(root *html.Node, dim string) int {
	control := dom.First(root, func(n *html.Node) bool {
		return dom.HasClass(n, "matrix-dim") && dom.Attr(n, "data-dim") == dim
	})
	value, err := strconv.Atoi(strings.TrimSpace(dom.Attr(control, "value")))
	if err != nil || value < 1 {
		return 1
	}
	return value
}

// AddTableRow appends a body row with as many cells as the header has.
func AddTableRow(root *html.Node) error {
	table := dom.ByTag(root, "table")
	if table == nil {
		return fmt.Errorf("components: fragment has no table")
	}
	body := dom.ByTag(table, "tbody")
	headerRow := dom.ByTag(dom.ByTag(table, "thead"), "tr")
	if body == nil || headerRow == nil {
		return fmt.Errorf("components: table is missing thead or tbody")
	}

	row := dom.NewElement("tr")
	for range dom.AllByTag(headerRow, "th") {
		cell := dom.NewElement("td", html.Attribute{Key: "contenteditable", Val: "true"})
		dom.SetText(cell, "New Cell")
		row.AppendChild(cell)
	}
	body.AppendChild(row)
	return nil
}

// AddTableColumn appends a header cell and one body cell per row.
func AddTableColumn(root *html.Node) error {
	table := dom.ByTag(root, "table")
	if table == nil {
		return fmt.Errorf("components: fragment has no table")
	}
	headerRow := dom.ByTag(dom.ByTag(table, "thead"), "tr")
	if headerRow == nil {
		return fmt.Errorf("components: table has no header row")
	}

	header := dom.NewElement("th", html.Attribute{Key: "contenteditable", Val: "true"})
	dom.SetText(header, "New Header")
	headerRow.AppendChild(header)

	for _, row := range dom.AllByTag(dom.ByTag(table, "tbody"), "tr") {
		cell := dom.NewElement("td", html.Attribute{Key: "contenteditable", Val: "true"})
		dom.SetText(cell, "New Cell")
		row.AppendChild(cell)
	}
	return nil
}

// RemoveTableRow deletes the last body row, keeping at least one.
func RemoveTableRow(root *html.Node) error {
	body := dom.ByTag(root, "tbody")
	if body == nil {
		return fmt.Errorf("components: fragment has no table body")
	}
	rows := dom.AllByTag(body, "tr")
	if len(rows) <= 1 {
		return nil
	}
	dom.Detach(rows[len(rows)-1])
	return nil
}

// RemoveTableColumn deletes the last column, keeping at least one.
func RemoveTableColumn(root *html.Node) error {
	table := dom.ByTag(root, "table")
	if table == nil {
		return fmt.Errorf("components: fragment has no table")
	}
	headerRow := dom.ByTag(dom.ByTag(table, "thead"), "tr")
	if headerRow == nil || len(dom.AllByTag(headerRow, "th")) <= 1 {
		return nil
	}
	for _, row := range dom.AllByTag(table, "tr") {
		cells := dom.All(row, func(n *html.Node) bool {
			return dom.IsElement(n, "td", "th") && n.Parent == row
		})
		if len(cells) > 0 {
			dom.Detach(cells[len(cells)-1])
		}
	}
	return nil
}

// SetSelectOptions replaces a select component's options, regenerating values
// from the option text the way the option manager does.
func SetSelectOptions(root *html.Node, labels []string) error {
	selectEl := dom.ByTag(root, "select")
	if selectEl == nil {
		return fmt.Errorf("components: fragment has no select")
	}
	dom.RemoveChildren(selectEl)
	for _, label := range labels {
		value := strings.ToLower(strings.Join(strings.Fields(label), "-"))
		option := dom.NewElement("option", html.Attribute{Key: "value", Val: value})
		dom.SetText(option, label)
		selectEl.AppendChild(option)
	}
	return nil
}

// AddChoiceOption appends a checkbox or radio item to an options container,
// reusing the group name for radios.
func AddChoiceOption(root *html.Node, optionID string) error {
	container := dom.ByClass(root, "options-container")
	if container == nil {
		return fmt.Errorf("components: fragment has no options container")
	}
	radio := dom.First(container, func(n *html.Node) bool {
		return dom.IsElement(n, "input") && dom.Attr(n, "type") == "radio"
	})

	count := len(dom.AllByClass(container, "checkbox-item")) + len(dom.AllByClass(container, "radio-item"))
	label := dom.NewElement("label",
		html.Attribute{Key: "for", Val: optionID},
		html.Attribute{Key: "contenteditable", Val: "true"},
	)
	dom.SetText(label, fmt.Sprintf("Option %d", count+1))

	item := dom.NewElement("div")
	if radio != nil {
		dom.SetAttr(item, "class", "radio-item")
		item.AppendChild(dom.NewElement("input",
			html.Attribute{Key: "type", Val: "radio"},
			html.Attribute{Key: "name", Val: dom.Attr(radio, "name")},
			html.Attribute{Key: "id", Val: optionID},
		))
	} else {
		dom.SetAttr(item, "class", "checkbox-item")
		item.AppendChild(dom.NewElement("input",
			html.Attribute{Key: "type", Val: "checkbox"},
			html.Attribute{Key: "id", Val: optionID},
		))
	}
	item.AppendChild(label)
	container.AppendChild(item)
	return nil
}

// AddMatchItem appends an item to one side of a matching task.
func AddMatchItem(root *html.Node, side, itemID string) error {
	column := dom.First(root, func(n *html.Node) bool {
		return dom.HasClass(n, "matching-column") && dom.Attr(n, "data-side") == side
	})
	if column == nil {
		return fmt.Errorf("components: matching task has no %q column", side)
	}
	item := dom.NewElement("div",
		html.Attribute{Key: "class", Val: "matching-item"},
		html.Attribute{Key: "data-id", Val: itemID},
		html.Attribute{Key: "contenteditable", Val: "true"},
	)
	dom.SetText(item, strings.ToUpper(side[:1])+side[1:]+" Item")
	column.AppendChild(item)
	return nil
}

// AddMatch records a connection between a left and right matching item.
// Duplicate pairs are ignored.
func AddMatch(root *html.Node, startID, endID string) error {
	svg := dom.ByClass(root, "matching-canvas")
	if svg == nil {
		return fmt.Errorf("components: matching task has no line canvas")
	}
	for _, line := range dom.AllByTag(svg, "line") {
		if dom.Attr(line, "data-start") == startID && dom.Attr(line, "data-end") == endID {
			return nil
		}
	}
	line := dom.NewElement("line",
		html.Attribute{Key: "data-start", Val: startID},
		html.Attribute{Key: "data-end", Val: endID},
		html.Attribute{Key: "stroke", Val: "#6b7280"},
		html.Attribute{Key: "stroke-width", Val: "2"},
	)
	svg.AppendChild(line)
	return nil
}

// UpdateMatchLines recomputes line endpoints from live item bounding boxes,
// keyed by item data-id, relative to the task container box. Lines whose
// endpoints no longer exist are removed.
func UpdateMatchLines(root *html.Node, boxes map[string]model.Rect, container model.Rect) {
	svg := dom.ByClass(root, "matching-canvas")
	if svg == nil {
		return
	}
	for _, line := range dom.AllByTag(svg, "line") {
		start, okStart := boxes[dom.Attr(line, "data-start")]
		end, okEnd := boxes[dom.Attr(line, "data-end")]
		if !okStart || !okEnd {
			dom.Detach(line)
			continue
		}
		dom.SetAttr(line, "x1", formatCoord(start.Right()-container.Left))
		dom.SetAttr(line, "y1", formatCoord(start.CenterY()-container.Top))
		dom.SetAttr(line, "x2", formatCoord(end.Left-container.Left))
		dom.SetAttr(line, "y2", formatCoord(end.CenterY()-container.Top))
	}
}

// AddInteractiveItem appends a task card to an ordering list or the
// categorization bank.
func AddInteractiveItem(root *html.Node, targetClass string) error {
	if targetClass == "" {
		targetClass = "ordering-list"
	}
	target := dom.ByClass(root, targetClass)
	if target == nil {
		return fmt.Errorf("components: fragment has no %q target", targetClass)
	}
	item := dom.NewElement("div",
		html.Attribute{Key: "class", Val: "interactive-task-item"},
		html.Attribute{Key: "contenteditable", Val: "true"},
	)
	dom.SetText(item, "New Item")
	target.AppendChild(item)
	return nil
}

// AddCategoryBucket appends a category bucket to a categorization task.
func AddCategoryBucket(root *html.Node) error {
	wrapper := dom.ByClass(root, "categorization-buckets-wrapper")
	if wrapper == nil {
		return fmt.Errorf("components: fragment has no buckets wrapper")
	}
	bucket := dom.NewElement("div",
		html.Attribute{Key: "class", Val: "categorization-bucket interactive-task-container"},
	)
	title := dom.NewElement("strong", html.Attribute{Key: "contenteditable", Val: "true"})
	dom.SetText(title, "New Category")
	bucket.AppendChild(title)
	wrapper.AppendChild(bucket)
	return nil
}

// CreateBlank replaces the first occurrence of selected text inside the
// fill-in-blanks container with a blank input whose placeholder preserves the
// answer. Missing text is a no-op.
func CreateBlank(root *html.Node, selected string) error {
	container := dom.ByClass(root, "fill-in-blanks-container")
	if container == nil {
		return fmt.Errorf("components: fragment has no fill-in-blanks container")
	}
	blank := dom.NewElement("input",
		html.Attribute{Key: "type", Val: "text"},
		html.Attribute{Key: "class", Val: "blank-input"},
		html.Attribute{Key: "placeholder", Val: selected},
	)
	return replaceTextSpan(container, selected, blank)
}

// CreatePromptVariable turns selected prompt text into a named variable span
// and records it in the component's variable list.
func CreatePromptVariable(root *html.Node, selected, varID string) error {
	prompt := dom.ByClass(root, "builder-text-prompt")
	list := dom.ByClass(root, "prompt-variable-list")
	if prompt == nil || list == nil {
		return fmt.Errorf("components: fragment has no prompt or variable list")
	}

	input := dom.NewElement("input",
		html.Attribute{Key: "class", Val: "prompt-variable-input"},
		html.Attribute{Key: "value", Val: selected},
		html.Attribute{Key: "readonly", Val: ""},
	)
	wrapper := dom.NewElement("span",
		html.Attribute{Key: "class", Val: "prompt-variable"},
		html.Attribute{Key: "id", Val: varID},
		html.Attribute{Key: "data-text", Val: selected},
	)
	wrapper.AppendChild(input)
	if err := replaceTextSpan(prompt, selected, wrapper); err != nil {
		return err
	}

	entry := dom.NewElement("div",
		html.Attribute{Key: "class", Val: "prompt-variable-list-item"},
		html.Attribute{Key: "data-var-id", Val: varID},
	)
	dom.SetText(entry, varID+": "+selected)
	list.AppendChild(entry)
	return nil
}

// DeletePromptVariable removes a variable, restoring its original text in the
// prompt and dropping its list entry.
func DeletePromptVariable(root *html.Node, varID string) error {
	variable := dom.ByID(root, varID)
	if variable == nil || !dom.HasClass(variable, "prompt-variable") {
		return fmt.Errorf("components: prompt variable %q not found", varID)
	}
	text := dom.NewText(dom.Attr(variable, "data-text"))
	variable.Parent.InsertBefore(text, variable)
	dom.Detach(variable)

	entry := dom.First(root, func(n *html.Node) bool {
		return dom.HasClass(n, "prompt-variable-list-item") && dom.Attr(n, "data-var-id") == varID
	})
	dom.Detach(entry)
	return nil
}

// PromptVariables lists the variable ids and source text recorded on a
// text-prompt component.
func PromptVariables(root *html.Node) map[string]string {
	vars := make(map[string]string)
	for _, node := range dom.AllByClass(root, "prompt-variable") {
		if id := dom.Attr(node, "id"); id != "" {
			vars[id] = dom.Attr(node, "data-text")
		}
	}
	return vars
}

// replaceTextSpan splits the first text node containing needle and inserts
// replacement between the surrounding halves.
func replaceTextSpan(container *html.Node, needle string, replacement *html.Node) error {
	if strings.TrimSpace(needle) == "" {
		return nil
	}
	textNode := dom.First(container, func(n *html.Node) bool {
		return n.Type == html.TextNode && strings.Contains(n.Data, needle)
	})
	if textNode == nil {
		return nil
	}
	parent := textNode.Parent
	idx := strings.Index(textNode.Data, needle)
	before, after := textNode.Data[:idx], textNode.Data[idx+len(needle):]

	if before != "" {
		parent.InsertBefore(dom.NewText(before), textNode)
	}
	parent.InsertBefore(replacement, textNode)
	if after != "" {
		parent.InsertBefore(dom.NewText(after), textNode)
	}
	dom.Detach(textNode)
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
