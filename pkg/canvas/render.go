package canvas

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"

	"github.com/glenrsmithjr/teach/internal/dom"
)

//go:embed templates/*.html
var pageTemplates embed.FS

var (
	pageSetOnce sync.Once
	pageSet     *pongo2.TemplateSet
	pageTmpl    *pongo2.Template
	pageTmplErr error
)

func pageTemplate() (*pongo2.Template, error) {
	pageSetOnce.Do(func() {
		pageSet = pongo2.NewSet("teach", pongo2.NewFSLoader(pageTemplates))
		pageTmpl, pageTmplErr = pageSet.FromFile("templates/page.html")
	})
	return pageTmpl, pageTmplErr
}

// Builder chrome stripped from save-ready output. Everything else in the
// wrapper is tutor content.
var chromeClasses = []string{
	"builder-element-actions",
	"resize-handle",
	"rotate-handle",
	"builder-component-controls",
	"select-options-manager",
	"matrix-controls",
	"prompt-variable-list",
	"canvas-placeholder",
	"grid-overlay",
}

// RenderOption configures document rendering.
type RenderOption func(*renderConfig)

type renderConfig struct {
	title string
	theme *theme.RendererConfig
}

// WithTitle overrides the page title. The default is the canvas title.
func WithTitle(title string) RenderOption {
	return func(cfg *renderConfig) { cfg.title = title }
}

// WithTheme applies a resolved theme: chrome partials, CSS variables, and
// the stylesheet asset.
func WithTheme(cfg *theme.RendererConfig) RenderOption {
	return func(rc *renderConfig) { rc.theme = cfg }
}

// Fragment returns the save-ready HTML for the canvas body: one positioned
// element per instance with builder chrome stripped and editing affordances
// removed. This is the markup persisted with the tutor and re-hydrated by
// LoadHTML.
func (c *Canvas) Fragment() string {
	var b strings.Builder
	for _, inst := range c.instances {
		b.WriteString(dom.Render(c.cleanWrapper(inst)))
	}
	return b.String()
}

// RenderHTML renders the full tutor page: the cleaned canvas body inside the
// page shell template, with optional theme chrome.
func (c *Canvas) RenderHTML(opts ...RenderOption) (string, error) {
	cfg := renderConfig{title: c.Title()}
	for _, opt := range opts {
		opt(&cfg)
	}

	tmpl, err := pageTemplate()
	if err != nil {
		return "", fmt.Errorf("canvas: load page template: %w", err)
	}

	ctx := pongo2.Context{
		"title": cfg.title,
		"body":  c.Fragment(),
	}
	if tc := cfg.theme; tc != nil {
		ctx["theme"] = tc.Theme
		ctx["variant"] = tc.Variant
		ctx["header"] = tc.Partials["tutor.header"]
		ctx["footer"] = tc.Partials["tutor.footer"]
		ctx["css_vars"] = cssVarsStyle(tc.CSSVars)
		if tc.AssetURL != nil {
			ctx["stylesheet"] = tc.AssetURL("tutor.stylesheet")
		}
	}

	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("canvas: render page: %w", err)
	}
	return out, nil
}

// cleanWrapper clones an instance's wrapper and scrubs it for persistence:
// chrome removed, contenteditable dropped, transient classes cleared, and
// geometry written into the style attribute.
func (c *Canvas) cleanWrapper(inst *Instance) *html.Node {
	clone := dom.Clone(inst.Wrapper)

	for _, class := range chromeClasses {
		for _, node := range dom.AllByClass(clone, class) {
			dom.Detach(node)
		}
	}
	for _, button := range dom.AllByTag(clone, "button") {
		dom.Detach(button)
	}
	dom.Walk(clone, func(n *html.Node) bool {
		dom.RemoveAttr(n, "contenteditable")
		return true
	})
	dom.RemoveClass(clone, "selected")
	dom.RemoveClass(clone, "demonstration-highlight")

	dom.SetAttr(clone, "style", inst.styleAttr())
	return clone
}

func (i *Instance) styleAttr() string {
	var b strings.Builder
	b.WriteString("position:absolute;left:")
	b.WriteString(formatPx(i.Pos.X))
	b.WriteString(";top:")
	b.WriteString(formatPx(i.Pos.Y))
	if i.Size.W > 0 {
		b.WriteString(";width:")
		b.WriteString(formatPx(i.Size.W))
	}
	if i.Size.H > 0 {
		b.WriteString(";height:")
		b.WriteString(formatPx(i.Size.H))
	}
	if i.Rotation != 0 {
		b.WriteString(";transform:rotate(")
		b.WriteString(strconv.FormatFloat(i.Rotation, 'f', -1, 64))
		b.WriteString("deg)")
	}
	b.WriteString(";z-index:")
	b.WriteString(strconv.Itoa(i.Z))
	return b.String()
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
