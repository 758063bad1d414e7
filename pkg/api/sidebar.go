package api

import (
	"fmt"
	"strings"

	"github.com/glenrsmithjr/teach/internal/dom"
)

// Script is one script extracted from a sidebar fragment, in document
// order. External scripts carry a source URL; inline scripts carry the
// code body. The embedder runs externals to completion before inlines that
// follow them, matching injection semantics.
type Script struct {
	Src    string
	Inline string
}

// External reports whether the script loads from a URL.
func (s Script) External() bool { return s.Src != "" }

// Sidebar is a fetched fragment split into injectable markup and the
// scripts that accompanied it.
type Sidebar struct {
	HTML    string
	Scripts []Script
}

// ParseSidebar splits fragment markup into script-free HTML and the ordered
// script list.
func ParseSidebar(markup string) (*Sidebar, error) {
	fragment, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, fmt.Errorf("api: parse sidebar: %w", err)
	}

	var scripts []Script
	for _, node := range dom.AllByTag(fragment, "script") {
		if src := dom.Attr(node, "src"); src != "" {
			scripts = append(scripts, Script{Src: src})
		} else if code := strings.TrimSpace(dom.Text(node)); code != "" {
			scripts = append(scripts, Script{Inline: code})
		}
		dom.Detach(node)
	}

	return &Sidebar{HTML: dom.InnerHTML(fragment), Scripts: scripts}, nil
}
