package model

// ChoiceOption is a single option of a select component.
type ChoiceOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// SelectValue captures a select component: every option plus the selection.
type SelectValue struct {
	SelectedValue string         `json:"selectedValue"`
	Options       []ChoiceOption `json:"options"`
}

// CheckItem is one checkbox in a checkbox group.
type CheckItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// RadioOption is one option in a radio group.
type RadioOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RadioValue captures a radio group: the checked option id plus all options.
type RadioValue struct {
	SelectedValue string        `json:"selectedValue"`
	Options       []RadioOption `json:"options"`
}

// FractionValue is the numerator/denominator pair of a fraction component.
type FractionValue struct {
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

// ExponentValue is the base/power pair of an exponent component.
type ExponentValue struct {
	Base  string `json:"base"`
	Power string `json:"power"`
}

// RadicalValue is the radicand of a radical component.
type RadicalValue struct {
	Radicand string `json:"radicand"`
}

// LimitsValue is shared by summation and integral components: upper and lower
// limits plus the expression body.
type LimitsValue struct {
	Upper      string `json:"upper"`
	Lower      string `json:"lower"`
	Expression string `json:"expression"`
}

// MatrixValue is the shape and cell contents of a matrix component. Shape is
// driven by the explicit row/column controls, not by counting cells.
type MatrixValue struct {
	Rows int        `json:"rows"`
	Cols int        `json:"cols"`
	Data [][]string `json:"data"`
}
