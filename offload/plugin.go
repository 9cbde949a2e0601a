// Package offload moves opted-in third-party scripts into a web worker with
// the Partytown runtime.
//
// Scripts opt in through the worker flag of the script registry. When a page
// prints such a script, the plugin makes sure the Partytown bootstrap is
// printed first in the head and marks the script, and its inline before/after
// blocks, with type="text/partytown" so the browser leaves them to the worker.
//
// Usage:
//
//	reg := scripts.New()
//	p := offload.New(offload.Options{Assets: os.DirFS(pluginDir)})
//	r := page.New(reg, p)
//	reg.Add("gtag", src, nil, "", scripts.Args{Worker: true})
//	reg.Enqueue("gtag")
//	r.RenderHead(w)
package offload

import (
	"io/fs"

	"webworker.GO/core/cache"
	"webworker.GO/page"
)

const (
	// Handle is the script handle carrying the Partytown bootstrap.
	Handle = "web-worker-offloading"
	// Version is reported in the generator meta tag and used as the handle version.
	Version = "0.2.1"
	// ScriptType marks a script for execution by the Partytown worker.
	ScriptType = "text/partytown"
	// ConfigurationHook names the configuration filter hook.
	ConfigurationHook = "plwwo_configuration"
)

// Options configures a Plugin.
type Options struct {
	// PluginsURL is the base URL (or path) plugins are served from.
	PluginsURL string
	// Slug is the plugin directory name under PluginsURL.
	Slug string
	// Debug and ScriptDebug together add debug=true to the configuration.
	// ScriptDebug alone selects the unminified bootstrap snippet.
	Debug       bool
	ScriptDebug bool
	// Assets is the plugin directory holding build/partytown.js.
	Assets fs.FS
	// Cache memoizes snippet reads when set.
	Cache *cache.Cache
	// Filters run after the globally registered configuration filters.
	Filters []ConfigFilter
	// Scripts are raw configuration scripts printed after registered ones.
	Scripts []string
}

// Plugin is the page module wiring web worker offloading into a renderer.
type Plugin struct {
	opts Options
}

// New returns a plugin. Empty PluginsURL and Slug take their defaults.
func New(opts Options) *Plugin {
	if opts.PluginsURL == "" {
		opts.PluginsURL = "/wp-content/plugins"
	}
	if opts.Slug == "" {
		opts.Slug = Handle
	}
	return &Plugin{opts: opts}
}

// Apply registers the bootstrap on the renderer's registry and appends the
// plugin's stages. Without a bootstrap only the generator meta tag is added:
// offloaded scripts then print as ordinary scripts.
func (p *Plugin) Apply(r *page.Renderer) {
	reg := r.Scripts
	p.RegisterDefaultScripts(reg)

	r.Head = append(r.Head, RenderGeneratorMetaTag)
	if !reg.Registered(Handle) {
		return
	}
	r.InlineAttributes = append(r.InlineAttributes, func(attrs map[string]string) map[string]string {
		return FilterInlineScriptAttributes(reg, attrs)
	})
	r.ScriptTag = append(r.ScriptTag, func(tag, handle string) string {
		return UpdateScriptType(reg, tag, handle)
	})
	r.PrintScripts = append(r.PrintScripts, func(handles []string) []string {
		return FilterPrintScripts(reg, handles)
	})
}
