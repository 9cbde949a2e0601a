package offload

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"

	"webworker.GO/scripts"
)

const (
	snippetPath      = "build/partytown.js"
	debugSnippetPath = "build/debug/partytown.js"
)

// SnippetCacheTag tags cached snippet reads so they can be dropped together.
const SnippetCacheTag = "offload:snippet"

// RegisterDefaultScripts registers the bootstrap handle with its inline
// payloads: the merged configuration and registered config scripts before,
// the Partytown snippet after. A missing snippet disables offloading for this
// registry without error.
func (p *Plugin) RegisterDefaultScripts(reg *scripts.Registry) {
	snippet, ok := p.snippet()
	if !ok {
		return
	}
	if !reg.Add(Handle, "", nil, Version, scripts.Args{InFooter: false}) {
		log.Printf("offload: handle %s already registered", Handle)
		return
	}

	reg.AddInlineScript(Handle, fmt.Sprintf(
		"window.partytown = {...(window.partytown || {}), ...%s};",
		p.ConfigJSON(),
	), scripts.PositionBefore)

	for _, js := range append(registeredScripts(), p.opts.Scripts...) {
		if code, ok := p.prepareScript(js); ok {
			reg.AddInlineScript(Handle, code, scripts.PositionBefore)
		}
	}

	reg.AddInlineScript(Handle, snippet, scripts.PositionAfter)
}

// SnippetPath returns the asset path of the bootstrap snippet.
func (p *Plugin) SnippetPath() string {
	if p.opts.ScriptDebug {
		return debugSnippetPath
	}
	return snippetPath
}

func (p *Plugin) snippet() (string, bool) {
	if p.opts.Assets == nil {
		return "", false
	}
	name := p.SnippetPath()
	key := SnippetCacheTag + ":" + path.Join(p.opts.Slug, name)
	if p.opts.Cache != nil {
		if v, ok := p.opts.Cache.Get(key); ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	b, err := fs.ReadFile(p.opts.Assets, name)
	if err != nil {
		log.Printf("offload: bootstrap snippet unavailable, offloading disabled: %v", err)
		return "", false
	}
	s := string(b)
	if p.opts.Cache != nil {
		p.opts.Cache.Set(key, s, 0, []string{SnippetCacheTag})
	}
	return s, true
}

// prepareScript parses a config script and minifies it unless script debug
// is on. Scripts that do not parse are dropped.
func (p *Plugin) prepareScript(js string) (string, bool) {
	if strings.TrimSpace(js) == "" {
		return "", false
	}
	minify := !p.opts.ScriptDebug
	res := esbuild.Transform(js, esbuild.TransformOptions{
		Loader:           esbuild.LoaderJS,
		MinifyWhitespace: minify,
		MinifySyntax:     minify,
	})
	if len(res.Errors) > 0 {
		log.Printf("offload: dropping config script: %s", res.Errors[0].Text)
		return "", false
	}
	return strings.TrimSpace(string(res.Code)), true
}
