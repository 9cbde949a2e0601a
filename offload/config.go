package offload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"webworker.GO/core/registry"
)

// Config is the Partytown configuration object. Keys keep insertion order so
// the serialized object is stable; setting an existing key keeps its position.
type Config struct {
	keys   []string
	values map[string]interface{}
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{values: make(map[string]interface{})}
}

// Set adds or overrides key.
func (c *Config) Set(key string, value interface{}) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Delete removes key.
func (c *Config) Delete(key string) {
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in order.
func (c *Config) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return len(c.keys)
}

// MarshalJSON encodes the object in key order. Values are HTML-escaped so the
// result can be embedded in an inline script; slashes are left as is.
func (c *Config) MarshalJSON() ([]byte, error) {
	return c.encode(true)
}

func (c *Config) encode(strict bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	for _, k := range c.keys {
		v, err := json.Marshal(c.values[k])
		if err != nil {
			if strict {
				return nil, fmt.Errorf("config key %q: %w", k, err)
			}
			log.Printf("offload: dropping config key %q: %v", k, err)
			continue
		}
		key, _ := json.Marshal(k)
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(v)
		n++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ConfigFilter is the plwwo_configuration hook. A filter may add, override or
// delete entries; returning nil keeps the configuration it was given.
type ConfigFilter func(cfg *Config) *Config

// SetPath returns a filter that sets a value at a dotted path. The first path
// segment is a top-level key; the rest addresses into that value using sjson
// path syntax. Values that are not valid JSON are stored as strings.
func SetPath(path, value string) ConfigFilter {
	raw := json.RawMessage(value)
	if !gjson.Valid(value) {
		raw, _ = json.Marshal(value)
	}
	return func(cfg *Config) *Config {
		top, rest, nested := strings.Cut(path, ".")
		if top == "" {
			return cfg
		}
		if !nested {
			cfg.Set(top, raw)
			return cfg
		}
		current := []byte("{}")
		if v, ok := cfg.Get(top); ok {
			if b, err := json.Marshal(v); err == nil {
				current = b
			}
		}
		updated, err := sjson.SetRawBytes(current, rest, raw)
		if err != nil {
			log.Printf("offload: cannot set config path %q: %v", path, err)
			return cfg
		}
		cfg.Set(top, json.RawMessage(updated))
		return cfg
	}
}

type configFilterEntry struct {
	name     string
	priority int
	filter   ConfigFilter
}

type configScriptEntry struct {
	name   string
	script string
}

var mu sync.Mutex

func getConfigFilters() []configFilterEntry {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryConfigFilter); ok && v != nil {
		return v.([]configFilterEntry)
	}
	return nil
}

func getConfigScripts() []configScriptEntry {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryConfigScript); ok && v != nil {
		return v.([]configScriptEntry)
	}
	return nil
}

// RegisterConfigFilter adds a configuration filter. Call from init() in
// extension packages. Lower priorities run first; equal priorities run in
// registration order. Panics on duplicate names or after the registry locked.
func RegisterConfigFilter(name string, priority int, filter ConfigFilter) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryConfigFilter) {
		panic("offload: config filters locked (register only during init)")
	}
	list := getConfigFilters()
	for _, e := range list {
		if e.name == name {
			panic("offload: duplicate config filter " + name)
		}
	}
	list = append(list, configFilterEntry{name: name, priority: priority, filter: filter})
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryConfigFilter, list)
}

// UnregisterConfigFilter removes a filter (for tests).
func UnregisterConfigFilter(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryConfigFilter)
	var out []configFilterEntry
	for _, e := range getConfigFilters() {
		if e.name != name {
			out = append(out, e)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryConfigFilter, out)
}

// RegisterConfigScript adds raw JavaScript printed after the JSON
// configuration, for options JSON cannot carry (functions such as resolveUrl).
// The script should merge into window.partytown rather than replace it.
func RegisterConfigScript(name, script string) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryConfigScript) {
		panic("offload: config scripts locked (register only during init)")
	}
	list := getConfigScripts()
	for _, e := range list {
		if e.name == name {
			panic("offload: duplicate config script " + name)
		}
	}
	list = append(list, configScriptEntry{name: name, script: script})
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryConfigScript, list)
}

// UnregisterConfigScript removes a config script (for tests).
func UnregisterConfigScript(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryConfigScript)
	var out []configScriptEntry
	for _, e := range getConfigScripts() {
		if e.name != name {
			out = append(out, e)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryConfigScript, out)
}

// registeredFilters returns the global filters in run order and locks them.
func registeredFilters() []ConfigFilter {
	entries := append([]configFilterEntry(nil), getConfigFilters()...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryConfigFilter) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryConfigFilter)
	}
	out := make([]ConfigFilter, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.filter)
	}
	return out
}

func registeredScripts() []string {
	entries := getConfigScripts()
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryConfigScript) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryConfigScript)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.script)
	}
	return out
}

// LibPath returns the URL path of the Partytown build directory.
func (p *Plugin) LibPath() string {
	base := strings.TrimSuffix(p.opts.PluginsURL, "/") + "/" + p.opts.Slug + "/build/"
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	return u.Path
}

// Configuration builds the Partytown configuration: lib, debug when both
// debug switches are on, then the registered filters followed by the
// plugin's own.
func (p *Plugin) Configuration() *Config {
	cfg := NewConfig()
	cfg.Set("lib", p.LibPath())
	if p.opts.Debug && p.opts.ScriptDebug {
		cfg.Set("debug", true)
	}
	filters := append(registeredFilters(), p.opts.Filters...)
	for _, filter := range filters {
		if filter == nil {
			continue
		}
		if out := filter(cfg); out != nil {
			cfg = out
		}
	}
	return cfg
}

// ConfigJSON serializes Configuration. Entries that cannot be encoded are
// dropped and logged.
func (p *Plugin) ConfigJSON() string {
	b, _ := p.Configuration().encode(false)
	return string(b)
}
