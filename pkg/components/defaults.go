package components

import (
	"bytes"
	"fmt"

	"github.com/glenrsmithjr/teach/pkg/model"
)

// NewDefaultRegistry constructs a registry pre-populated with the builtin
// tutor components: text and input controls, choice elements, layout and
// media blocks, shapes, interactive tasks, and math composites.
func NewDefaultRegistry() *Registry {
	registry := New()

	// Text and input.
	registry.MustRegister(model.TypeLabel, Descriptor{
		Template: staticTemplate(`<label class="builder-label component-root" contenteditable="true">Label Text</label>`),
	})
	registry.MustRegister(model.TypeText, Descriptor{
		Template: staticTemplate(`<input type="text" class="builder-input component-root" placeholder="">`),
	})
	registry.MustRegister(model.TypeNumberInput, Descriptor{
		Template: staticTemplate(`<input type="number" class="builder-input component-root" value="0">`),
	})
	registry.MustRegister(model.TypeTextarea, Descriptor{
		Template: staticTemplate(`<textarea class="builder-textarea component-root" placeholder=""></textarea>`),
	})
	registry.MustRegister(model.TypeParagraph, Descriptor{
		Template: staticTemplate(`<p class="builder-paragraph component-root" contenteditable="true">This is a paragraph.</p>`),
	})
	registry.MustRegister(model.TypeTextPrompt, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<div class="builder-text-prompt" contenteditable="true">Enter a prompt and select text to create variables...</div>` +
			`<div class="prompt-variable-list"></div>` +
			`<div class="builder-component-controls"><button class="create-prompt-variable-btn">Enter Variable Creation Mode</button></div>` +
			`</div>`),
		DefaultSize: model.Size{W: 300, H: 200},
	})
	registry.MustRegister(model.TypeDate, Descriptor{
		Template: staticTemplate(`<input type="date" class="builder-input component-root">`),
	})
	registry.MustRegister(model.TypeRichText, Descriptor{
		Template: staticTemplate(`<div class="builder-richtext component-root" contenteditable="true">Rich text content.</div>`),
	})
	for _, heading := range []model.ComponentType{model.TypeH1, model.TypeH2, model.TypeH3} {
		tag := string(heading)
		registry.MustRegister(heading, Descriptor{
			Template: staticTemplate(fmt.Sprintf(
				`<%s class="builder-heading component-root" contenteditable="true">Tutor Title</%s>`, tag, tag)),
		})
	}

	// Choice elements.
	registry.MustRegister(model.TypeSelect, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<select class="builder-select">` +
			`<option value="option1">Option 1</option>` +
			`<option value="option2">Option 2</option>` +
			`</select>` +
			`<div class="select-options-manager"></div>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeCheckbox, Descriptor{
		Template: func(buf *bytes.Buffer, data TemplateData) error {
			fmt.Fprintf(buf, `<div class="component-root">`+
				`<div class="options-container">`+
				`<div class="checkbox-item">`+
				`<input type="checkbox" id="checkbox1-%d">`+
				`<label for="checkbox1-%d" contenteditable="true">Option 1</label>`+
				`</div></div>`+
				`<button class="add-option-btn">+ Add Option</button>`+
				`</div>`, data.Seq, data.Seq)
			return nil
		},
	})
	registry.MustRegister(model.TypeRadio, Descriptor{
		Template: func(buf *bytes.Buffer, data TemplateData) error {
			fmt.Fprintf(buf, `<div class="component-root">`+
				`<div class="options-container">`+
				`<div class="radio-item">`+
				`<input type="radio" name="radio-group-%d" id="radio1-%d">`+
				`<label for="radio1-%d" contenteditable="true">Option 1</label>`+
				`</div></div>`+
				`<button class="add-option-btn">+ Add Option</button>`+
				`</div>`, data.Seq, data.Seq, data.Seq)
			return nil
		},
	})
	registry.MustRegister(model.TypeToggle, Descriptor{
		Template: staticTemplate(`<div class="checkbox-item component-root">` +
			`<label class="switch"><input type="checkbox"><span class="slider round"></span></label>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeSlider, Descriptor{
		Template: staticTemplate(`<div class="builder-slider-container component-root">` +
			`<span class="slider-value-display">50</span>` +
			`<input type="range" min="0" max="100" value="50">` +
			`<div class="builder-slider-labels"><span>0</span><span>100</span></div>` +
			`</div>`),
		Init: InitSlider,
	})
	registry.MustRegister(model.TypeFileUpload, Descriptor{
		Template: staticTemplate(`<input type="file" class="component-root">`),
	})

	// Layout and media.
	registry.MustRegister(model.TypeContainer, Descriptor{
		Template:    staticTemplate(`<div class="builder-container component-root" data-dropzone="true"></div>`),
		DefaultSize: model.Size{W: 300, H: 200},
	})
	registry.MustRegister(model.TypeTable, Descriptor{
		Template: staticTemplate(`<div class="component-root builder-table-container">` +
			`<div class="builder-table-wrapper"><table class="builder-table">` +
			`<thead><tr><th contenteditable="true">Header 1</th><th contenteditable="true">Header 2</th></tr></thead>` +
			`<tbody>` +
			`<tr><td contenteditable="true">Cell 1</td><td contenteditable="true">Cell 2</td></tr>` +
			`<tr><td contenteditable="true">Cell 3</td><td contenteditable="true">Cell 4</td></tr>` +
			`</tbody>` +
			`</table></div></div>`),
	})
	registry.MustRegister(model.TypeImage, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<div class="builder-image-container">` +
			`<img src="https://via.placeholder.com/150" alt="Placeholder image">` +
			`<figcaption contenteditable="true">Image Caption</figcaption>` +
			`</div>` +
			`<div class="builder-component-controls">` +
			`<div class="builder-control-row"><label>URL:</label><input class="image-url-input" type="text" value="https://via.placeholder.com/150"></div>` +
			`<div class="builder-control-row"><label>Alt Text:</label><input class="image-alt-input" type="text" value="Placeholder image"></div>` +
			`</div></div>`),
	})
	registry.MustRegister(model.TypeVideo, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<div class="builder-media-container"><iframe src="" frameborder="0" allowfullscreen></iframe></div>` +
			`<div class="builder-component-controls"><div class="builder-control-row"><label>URL:</label><input class="media-url-input" type="text" value=""></div></div>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeAudio, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<div class="builder-media-container"><audio controls src=""></audio></div>` +
			`<div class="builder-component-controls"><div class="builder-control-row"><label>URL:</label><input class="media-url-input" type="text" value=""></div></div>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeCode, Descriptor{
		Template: staticTemplate(`<div class="builder-code-block component-root"><pre contenteditable="true"><code>// Your code here</code></pre></div>`),
	})

	// Shapes and annotation.
	registry.MustRegister(model.TypeShapeRect, Descriptor{
		Template:  staticTemplate(`<div class="builder-shape component-root"><span class="builder-shape-text" contenteditable="false">Text</span></div>`),
		Rotatable: true,
	})
	registry.MustRegister(model.TypeShapeCircle, Descriptor{
		Template:    staticTemplate(`<div class="builder-shape builder-shape-circle component-root"><span class="builder-shape-text" contenteditable="false">Text</span></div>`),
		Rotatable:   true,
		DefaultSize: model.Size{W: 100, H: 100},
	})
	registry.MustRegister(model.TypeLine, Descriptor{
		Template:    staticTemplate(`<div class="builder-line component-root"></div>`),
		Rotatable:   true,
		DefaultSize: model.Size{W: 150, H: 20},
	})
	registry.MustRegister(model.TypeArrow, Descriptor{
		Template: staticTemplate(`<div class="builder-arrow component-root">` +
			`<svg viewBox="0 0 100 10" preserveAspectRatio="none"><path d="M 0 5 H 90 L 85 0 L 100 5 L 85 10 L 90 5" stroke="#343a40" stroke-width="2" fill="none"></path></svg>` +
			`</div>`),
		Rotatable:   true,
		DefaultSize: model.Size{W: 150, H: 20},
	})

	// Interactive tasks.
	registry.MustRegister(model.TypeMatching, Descriptor{
		Template: staticTemplate(`<div class="matching-task component-root">` +
			`<svg class="matching-canvas"></svg>` +
			`<div class="matching-column" data-side="left">` +
			`<div class="matching-item" data-id="L1" contenteditable="true">Left Item 1</div>` +
			`<div class="matching-item" data-id="L2" contenteditable="true">Left Item 2</div>` +
			`</div>` +
			`<div class="matching-column" data-side="right">` +
			`<div class="matching-item" data-id="R1" contenteditable="true">Right Item 1</div>` +
			`<div class="matching-item" data-id="R2" contenteditable="true">Right Item 2</div>` +
			`</div>` +
			`<div class="builder-component-controls">` +
			`<button class="add-match-item-btn" data-side="left">+ Left</button>` +
			`<button class="add-match-item-btn" data-side="right">+ Right</button>` +
			`</div></div>`),
		DefaultSize: model.Size{W: 300, H: 200},
	})
	registry.MustRegister(model.TypeOrdering, Descriptor{
		Template: staticTemplate(`<div class="interactive-task-container component-root">` +
			`<div class="ordering-list">` +
			`<div class="interactive-task-item" contenteditable="true">Item 1</div>` +
			`<div class="interactive-task-item" contenteditable="true">Item 2</div>` +
			`<div class="interactive-task-item" contenteditable="true">Item 3</div>` +
			`</div>` +
			`<div class="builder-component-controls"><button class="add-interactive-item-btn">+ Add Item</button></div>` +
			`</div>`),
		DefaultSize: model.Size{W: 300, H: 200},
	})
	registry.MustRegister(model.TypeCategorize, Descriptor{
		Template: staticTemplate(`<div class="categorization-container component-root">` +
			`<div class="categorization-bank-wrapper"><strong>Uncategorized</strong>` +
			`<div class="categorization-bank interactive-task-container">` +
			`<div class="interactive-task-item" contenteditable="true">Item A</div>` +
			`<div class="interactive-task-item" contenteditable="true">Item B</div>` +
			`</div></div>` +
			`<div class="categorization-buckets-wrapper">` +
			`<div class="categorization-bucket interactive-task-container"><strong contenteditable="true">Category 1</strong></div>` +
			`<div class="categorization-bucket interactive-task-container"><strong contenteditable="true">Category 2</strong></div>` +
			`</div>` +
			`<div class="builder-component-controls">` +
			`<button class="add-interactive-item-btn" data-target="categorization-bank">+ Add Card</button>` +
			`<button class="add-categorization-bucket-btn">+ Add Category</button>` +
			`</div></div>`),
		DefaultSize: model.Size{W: 300, H: 200},
	})
	registry.MustRegister(model.TypeFillInBlanks, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<div class="fill-in-blanks-container" contenteditable="true">Double click to edit. Select text and use the button below to create a blank space.</div>` +
			`<div class="builder-component-controls"><button class="create-blank-btn">Create Blank from Selection</button></div>` +
			`</div>`),
		DefaultSize: model.Size{W: 300, H: 200},
	})

	// Math elements.
	registry.MustRegister(model.TypeFraction, Descriptor{
		Template: staticTemplate(`<div class="math-fraction component-root">` +
			`<input type="text" class="math-input" placeholder="num" value="1">` +
			`<span class="fraction-bar"></span>` +
			`<input type="text" class="math-input" placeholder="den" value="2">` +
			`</div>`),
	})
	registry.MustRegister(model.TypeExponent, Descriptor{
		Template: staticTemplate(`<div class="math-exponent component-root">` +
			`<input type="text" class="math-input" value="x">` +
			`<sup><input type="text" class="math-input" value="2"></sup>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeRadical, Descriptor{
		Template: staticTemplate(`<div class="math-radical component-root">` +
			`<span class="radical-symbol">&#8730;</span>` +
			`<span class="radicand-container"><input type="text" class="math-input" value="16"></span>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeSummation, Descriptor{
		Template: staticTemplate(`<div class="math-summation component-root">` +
			`<div class="sum-limits">` +
			`<input type="text" class="math-input limit-upper" value="n">` +
			`<span class="sum-symbol">&#8721;</span>` +
			`<input type="text" class="math-input limit-lower" value="i=1">` +
			`</div>` +
			`<input type="text" class="math-input sum-expression" value="i">` +
			`</div>`),
	})
	registry.MustRegister(model.TypeIntegral, Descriptor{
		Template: staticTemplate(`<div class="math-integral component-root">` +
			`<div class="int-limits">` +
			`<input type="text" class="math-input limit-upper" value="b">` +
			`<span class="int-symbol">&#8747;</span>` +
			`<input type="text" class="math-input limit-lower" value="a">` +
			`</div>` +
			`<input type="text" class="math-input int-expression" value="f(x)">` +
			`<span class="int-dx">dx</span>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeMatrix, Descriptor{
		Template: staticTemplate(`<div class="component-root">` +
			`<div class="math-matrix-container"><div class="math-matrix">` +
			`<span class="matrix-bracket left">[</span>` +
			`<div class="matrix-grid">` +
			`<input type="text" class="math-input" value="a">` +
			`<input type="text" class="math-input" value="b">` +
			`<input type="text" class="math-input" value="c">` +
			`<input type="text" class="math-input" value="d">` +
			`</div>` +
			`<span class="matrix-bracket right">]</span>` +
			`</div></div>` +
			`<div class="matrix-controls">Rows: <input type="number" class="matrix-dim" data-dim="rows" value="2" min="1">` +
			`Cols: <input type="number" class="matrix-dim" data-dim="cols" value="2" min="1"></div>` +
			`</div>`),
	})
	registry.MustRegister(model.TypeGraph, Descriptor{
		Template: staticTemplate(`<div class="math-graph component-root">` +
			`<svg width="100%" height="150" viewBox="0 0 100 100" preserveAspectRatio="none">` +
			`<line x1="5" y1="95" x2="95" y2="95" stroke="#9ca3af" stroke-width="1"></line>` +
			`<line x1="5" y1="5" x2="5" y2="95" stroke="#9ca3af" stroke-width="1"></line>` +
			`<polyline points="5,95 25,60 50,40 75,50 95,20" fill="none" stroke="currentColor" stroke-width="1.5"></polyline>` +
			`</svg></div>`),
	})

	return registry
}

func staticTemplate(markup string) Template {
	return func(buf *bytes.Buffer, _ TemplateData) error {
		buf.WriteString(markup)
		return nil
	}
}
