// Package importer builds a starter canvas from an OpenAPI operation: the
// request-body schema's fields become form components laid out in a
// vertical grid, ready for the author to refine in the builder.
package importer

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/glenrsmithjr/teach/pkg/canvas"
	"github.com/glenrsmithjr/teach/pkg/components"
	"github.com/glenrsmithjr/teach/pkg/model"
)

const (
	columnX    = 40.0
	firstRowY  = 40.0
	rowSpacing = 80.0
)

// Options configures an import.
type Options struct {
	canvasOpts []canvas.Option
}

// Option mutates import options.
type Option func(*Options)

// WithCanvasOptions forwards options to the canvas under construction.
func WithCanvasOptions(opts ...canvas.Option) Option {
	return func(o *Options) { o.canvasOpts = append(o.canvasOpts, opts...) }
}

// FromFile loads an OpenAPI document from disk and imports one operation.
func FromFile(ctx context.Context, path, operationID string, opts ...Option) (*canvas.EditorSession, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: load document: %w", err)
	}
	return fromSpec(ctx, spec, operationID, opts...)
}

// FromData imports one operation from raw document bytes.
func FromData(ctx context.Context, data []byte, operationID string, opts ...Option) (*canvas.EditorSession, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("importer: load document: %w", err)
	}
	return fromSpec(ctx, spec, operationID, opts...)
}

func fromSpec(ctx context.Context, spec *openapi3.T, operationID string, opts ...Option) (*canvas.EditorSession, error) {
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("importer: validate document: %w", err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("importer: operation %q not found", operationID)
	}

	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}
	c := canvas.New(cfg.canvasOpts...)
	session := canvas.NewSession(c)

	title := op.Summary
	if title == "" {
		title = operationID
	}
	if heading := session.PlaceComponent(model.TypeH1, columnX, firstRowY); heading != nil {
		c.SetFieldValue(heading.ID, title)
	}

	schema := requestSchema(op)
	if schema == nil {
		session.Deselect()
		return session, nil
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for idx, name := range names {
		property := schema.Properties[name].Value
		if property == nil {
			continue
		}
		y := firstRowY + rowSpacing*float64(idx+1)
		inst := session.PlaceComponent(componentFor(property), columnX, y)
		if inst == nil {
			continue
		}
		if err := c.SetInstanceID(inst, name); err != nil {
			return nil, err
		}
		if len(property.Enum) > 0 {
			if err := components.SetSelectOptions(inst.Root(), enumLabels(property)); err != nil {
				return nil, fmt.Errorf("importer: options for %q: %w", name, err)
			}
		}
	}
	session.Deselect()
	return session, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content.Get("application/json")
	if content == nil || content.Schema == nil {
		return nil
	}
	return content.Schema.Value
}

// componentFor maps a schema to the component type that edits it: enums to
// selects, booleans to toggles, numerics to number inputs, arrays to
// checkbox groups, everything else to a text field.
func componentFor(schema *openapi3.Schema) model.ComponentType {
	if len(schema.Enum) > 0 {
		return model.TypeSelect
	}
	types := schema.Type
	switch {
	case types.Is(openapi3.TypeBoolean):
		return model.TypeToggle
	case types.Is(openapi3.TypeNumber), types.Is(openapi3.TypeInteger):
		return model.TypeNumberInput
	case types.Is(openapi3.TypeArray):
		return model.TypeCheckbox
	case types.Is(openapi3.TypeString) && schema.Format == "date":
		return model.TypeDate
	default:
		return model.TypeText
	}
}

func enumLabels(schema *openapi3.Schema) []string {
	labels := make([]string, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		labels = append(labels, fmt.Sprint(value))
	}
	return labels
}
