package extract

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
	"github.com/glenrsmithjr/teach/pkg/components"
	"github.com/glenrsmithjr/teach/pkg/model"
)

// NewDefaultRegistry wires the builtin extractors: structured option lists
// for choice components, scalars for toggle and slider, composite structs
// for the math components, and trimmed text for everything else.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(model.TypeSelect, extractSelect)
	r.Register(model.TypeCheckbox, extractCheckboxGroup)
	r.Register(model.TypeRadio, extractRadioGroup)
	r.Register(model.TypeToggle, extractToggle)
	r.Register(model.TypeSlider, extractSlider)
	r.Register(model.TypeNumberInput, extractNumber)
	r.Register(model.TypeRichText, extractRichText)
	r.Register(model.TypeFraction, extractFraction)
	r.Register(model.TypeExponent, extractExponent)
	r.Register(model.TypeRadical, extractRadical)
	r.Register(model.TypeSummation, extractLimits("sum-expression"))
	r.Register(model.TypeIntegral, extractLimits("int-expression"))
	r.Register(model.TypeMatrix, extractMatrix)
	return r
}

func extractSelect(root *html.Node) any {
	selectEl := dom.ByTag(root, "select")
	if selectEl == nil {
		return model.SelectValue{}
	}
	value := model.SelectValue{}
	for _, option := range dom.AllByTag(selectEl, "option") {
		opt := model.ChoiceOption{
			Value: dom.Attr(option, "value"),
			Text:  strings.TrimSpace(dom.Text(option)),
		}
		value.Options = append(value.Options, opt)
		if dom.HasAttr(option, "selected") {
			value.SelectedValue = opt.Value
		}
	}
	// An unmarked select resolves to its first option, as a browser would.
	if value.SelectedValue == "" && len(value.Options) > 0 {
		value.SelectedValue = value.Options[0].Value
	}
	return value
}

func extractCheckboxGroup(root *html.Node) any {
	var items []model.CheckItem
	for _, item := range dom.AllByClass(root, "checkbox-item") {
		input := dom.ByTag(item, "input")
		if input == nil {
			continue
		}
		items = append(items, model.CheckItem{
			ID:      dom.Attr(input, "id"),
			Label:   strings.TrimSpace(dom.Text(dom.ByTag(item, "label"))),
			Checked: dom.HasAttr(input, "checked"),
		})
	}
	return items
}

func extractRadioGroup(root *html.Node) any {
	value := model.RadioValue{}
	for _, item := range dom.AllByClass(root, "radio-item") {
		input := dom.ByTag(item, "input")
		if input == nil {
			continue
		}
		option := model.RadioOption{
			ID:    dom.Attr(input, "id"),
			Label: strings.TrimSpace(dom.Text(dom.ByTag(item, "label"))),
		}
		value.Options = append(value.Options, option)
		if dom.HasAttr(input, "checked") {
			value.SelectedValue = option.ID
		}
	}
	return value
}

func extractToggle(root *html.Node) any {
	input := dom.ByTag(root, "input")
	return input != nil && dom.HasAttr(input, "checked")
}

func extractSlider(root *html.Node) any {
	slider := dom.First(root, func(n *html.Node) bool {
		return dom.IsElement(n, "input") && dom.Attr(n, "type") == "range"
	})
	v, err := strconv.ParseFloat(dom.Attr(slider, "value"), 64)
	if err != nil {
		return float64(0)
	}
	return v
}

// extractNumber yields a float, or nil when the field is blank.
func extractNumber(root *html.Node) any {
	input := dom.ByTag(root, "input")
	raw := strings.TrimSpace(dom.Attr(input, "value"))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return v
}

func extractRichText(root *html.Node) any {
	if region := dom.ByClass(root, "builder-richtext"); region != nil {
		return dom.InnerHTML(region)
	}
	return dom.InnerHTML(root)
}

func extractFraction(root *html.Node) any {
	inputs := mathInputs(root)
	value := model.FractionValue{}
	if len(inputs) > 0 {
		value.Numerator = dom.Attr(inputs[0], "value")
	}
	if len(inputs) > 1 {
		value.Denominator = dom.Attr(inputs[1], "value")
	}
	return value
}

func extractExponent(root *html.Node) any {
	inputs := mathInputs(root)
	value := model.ExponentValue{}
	if len(inputs) > 0 {
		value.Base = dom.Attr(inputs[0], "value")
	}
	if len(inputs) > 1 {
		value.Power = dom.Attr(inputs[1], "value")
	}
	return value
}

func extractRadical(root *html.Node) any {
	inputs := mathInputs(root)
	value := model.RadicalValue{}
	if len(inputs) > 0 {
		value.Radicand = dom.Attr(inputs[0], "value")
	}
	return value
}

// extractLimits serves summation and integral, which differ only in the
// class naming of the expression input.
func extractLimits(expressionClass string) Func {
	return func(root *html.Node) any {
		return model.LimitsValue{
			Upper:      dom.Attr(dom.ByClass(root, "limit-upper"), "value"),
			Lower:      dom.Attr(dom.ByClass(root, "limit-lower"), "value"),
			Expression: dom.Attr(dom.ByClass(root, expressionClass), "value"),
		}
	}
}

// extractMatrix reads shape from the explicit dimension controls and chunks
// the grid inputs row-major.
func extractMatrix(root *html.Node) any {
	rows, cols := components.MatrixDims(root)
	value := model.MatrixValue{Rows: rows, Cols: cols}

	grid := dom.ByClass(root, "matrix-grid")
	cells := dom.AllByTag(grid, "input")
	value.Data = make([][]string, rows)
	for r := 0; r < rows; r++ {
		value.Data[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx < len(cells) {
				value.Data[r][c] = dom.Attr(cells[idx], "value")
			}
		}
	}
	return value
}

// extractText is the fallback: the first input's value, textarea text, or
// editable region text, trimmed.
func extractText(root *html.Node) any {
	if input := dom.ByTag(root, "input"); input != nil {
		return strings.TrimSpace(dom.Attr(input, "value"))
	}
	if area := dom.ByTag(root, "textarea"); area != nil {
		return strings.TrimSpace(dom.Text(area))
	}
	if editable := dom.First(root, dom.ContentEditable); editable != nil {
		return strings.TrimSpace(dom.Text(editable))
	}
	return strings.TrimSpace(dom.Text(root))
}

// mathInputs lists a math composite's text inputs in document order.
func mathInputs(root *html.Node) []*html.Node {
	return dom.All(root, func(n *html.Node) bool {
		return dom.HasClass(n, "math-input") && dom.IsElement(n, "input")
	})
}
