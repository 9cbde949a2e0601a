// Package page prints a request's scripts into the document head and footer.
//
// Behaviour is extended by composing Modules into a Renderer; each module
// appends stage functions instead of subscribing to global hooks.
package page

import (
	"html"
	"io"
	"net/url"
	"slices"
	"sort"
	"strings"

	"webworker.GO/scripts"
)

// PrintFilter adjusts the ordered list of handles about to be printed.
type PrintFilter func(handles []string) []string

// TagFilter adjusts the rendered HTML of one handle.
type TagFilter func(tag, handle string) string

// AttributesFilter adjusts the attributes of an inline script block.
type AttributesFilter func(attrs map[string]string) map[string]string

// HeadAction writes markup into the document head before any script.
type HeadAction func(w io.Writer)

// Module contributes stages to a Renderer.
type Module interface {
	Apply(r *Renderer)
}

// Renderer prints the scripts of one registry. Stages run in slice order.
type Renderer struct {
	Scripts *scripts.Registry

	PrintScripts     []PrintFilter
	ScriptTag        []TagFilter
	InlineAttributes []AttributesFilter
	Head             []HeadAction

	done     map[string]bool
	deferred []string
}

// New builds a renderer over reg and applies modules in order.
func New(reg *scripts.Registry, modules ...Module) *Renderer {
	r := &Renderer{
		Scripts: reg,
		done:    make(map[string]bool),
	}
	for _, m := range modules {
		m.Apply(r)
	}
	return r
}

// RenderHead runs the head actions and prints every queued head-group script.
// Scripts assigned to a later group are kept for RenderFooter.
func (r *Renderer) RenderHead(w io.Writer) error {
	var b strings.Builder
	for _, action := range r.Head {
		action(&b)
	}
	r.printItems(&b, r.Scripts.Queue(), scripts.GroupHead)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderFooter prints what RenderHead deferred plus anything enqueued since.
func (r *Renderer) RenderFooter(w io.Writer) error {
	pending := append([]string(nil), r.deferred...)
	r.deferred = nil
	for _, h := range r.Scripts.Queue() {
		if !r.done[h] && !slices.Contains(pending, h) {
			pending = append(pending, h)
		}
	}
	var b strings.Builder
	r.printItems(&b, pending, scripts.GroupFooter)
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) printItems(b *strings.Builder, handles []string, group int) {
	for _, filter := range r.PrintScripts {
		handles = filter(handles)
	}
	for _, h := range handles {
		if r.done[h] {
			continue
		}
		s, ok := r.Scripts.Get(h)
		if !ok {
			continue
		}
		if s.Group > group {
			if !slices.Contains(r.deferred, h) {
				r.deferred = append(r.deferred, h)
			}
			continue
		}
		b.WriteString(r.renderItem(s))
		r.done[h] = true
	}
}

func (r *Renderer) renderItem(s *scripts.Script) string {
	before := r.inlineTag(s.Handle, scripts.PositionBefore, s.Before)
	after := r.inlineTag(s.Handle, scripts.PositionAfter, s.After)
	if s.Src == "" {
		return before + after
	}
	tag := before + externalTag(s) + after
	for _, filter := range r.ScriptTag {
		tag = filter(tag, s.Handle)
	}
	return tag
}

func (r *Renderer) inlineTag(handle string, pos scripts.Position, data []string) string {
	if len(data) == 0 {
		return ""
	}
	attrs := map[string]string{"id": handle + "-js-" + string(pos)}
	for _, filter := range r.InlineAttributes {
		attrs = filter(attrs)
	}
	return "<script" + renderAttrs(attrs) + ">\n" + strings.Join(data, "\n") + "\n</script>\n"
}

func externalTag(s *scripts.Script) string {
	src := s.Src
	if s.Version != "" {
		sep := "?"
		if strings.Contains(src, "?") {
			sep = "&"
		}
		src += sep + "ver=" + url.QueryEscape(s.Version)
	}
	return `<script src="` + html.EscapeString(src) + `" id="` + html.EscapeString(s.Handle+"-js") + `"></script>` + "\n"
}

// renderAttrs prints id first and the remaining attributes sorted by name.
func renderAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := attrs["id"]; ok {
		keys = append([]string{"id"}, keys...)
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" " + k + `="` + html.EscapeString(attrs[k]) + `"`)
	}
	return b.String()
}
