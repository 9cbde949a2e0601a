package html

import (
	"html/template"
	"io"
	"strings"

	"webworker.GO/offload"
	"webworker.GO/page"
	"webworker.GO/scripts"
	"webworker.GO/site"
)

// PageData is passed to the page layout.
type PageData struct {
	Title  string
	Head   template.HTML
	Footer template.HTML
}

// Plugin returns the offload plugin for m. The manifest's partytown entries
// apply before the filters already in opts.
func Plugin(m *site.Manifest, opts offload.Options) *offload.Plugin {
	opts.Filters = append([]offload.ConfigFilter{m.ConfigFilter()}, opts.Filters...)
	return offload.New(opts)
}

// BuildPage renders the head and footer script output for m against a fresh
// script registry.
func BuildPage(m *site.Manifest, opts offload.Options) (PageData, error) {
	reg := scripts.New()
	r := page.New(reg, Plugin(m, opts))
	m.Apply(reg)

	var head, footer strings.Builder
	if err := r.RenderHead(&head); err != nil {
		return PageData{}, err
	}
	if err := r.RenderFooter(&footer); err != nil {
		return PageData{}, err
	}
	return PageData{
		Title:  m.Title,
		Head:   template.HTML(head.String()),
		Footer: template.HTML(footer.String()),
	}, nil
}

// RenderPage writes the full page for m.
func RenderPage(w io.Writer, m *site.Manifest, opts offload.Options) error {
	data, err := BuildPage(m, opts)
	if err != nil {
		return err
	}
	return layout.Render(w, "page.html", data, nil)
}
