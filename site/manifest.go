// Package site loads the HCL manifest describing the scripts a page enqueues
// and the Partytown options it adds to the offload configuration.
//
//	title = "Demo"
//
//	script "gtag" {
//	  src    = "https://www.googletagmanager.com/gtag/js?id=G-1"
//	  worker = true
//	  after  = ["window.dataLayer = window.dataLayer || [];"]
//	}
//
//	partytown {
//	  forward = ["dataLayer.push"]
//	}
package site

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"webworker.GO/offload"
	"webworker.GO/scripts"
)

// Script is one script declared by the manifest.
type Script struct {
	Handle   string
	Src      string
	Deps     []string
	Version  string
	InFooter bool
	Worker   bool
	Before   []string
	After    []string
}

// Entry is one Partytown option, already encoded as JSON.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Manifest is a decoded site manifest.
type Manifest struct {
	Path      string
	Title     string
	Scripts   []Script
	Partytown []Entry
}

type hclManifestFile struct {
	Title     string          `hcl:"title,optional"`
	Scripts   []*hclScript    `hcl:"script,block"`
	Partytown []*hclPartytown `hcl:"partytown,block"`
}

type hclScript struct {
	Handle   string   `hcl:"handle,label"`
	Src      string   `hcl:"src,optional"`
	Deps     []string `hcl:"deps,optional"`
	Version  string   `hcl:"version,optional"`
	InFooter bool     `hcl:"in_footer,optional"`
	Worker   bool     `hcl:"worker,optional"`
	Before   []string `hcl:"before,optional"`
	After    []string `hcl:"after,optional"`
}

type hclPartytown struct {
	Body hcl.Body `hcl:",remain"`
}

// Load parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse site manifest %s: %w", path, diags)
	}
	return decode(f.Body, path)
}

// Parse decodes a manifest from src; filename is used in diagnostics.
func Parse(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse site manifest %s: %w", filename, diags)
	}
	return decode(f.Body, filename)
}

func decode(body hcl.Body, path string) (*Manifest, error) {
	var parsed hclManifestFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode site manifest %s: %w", path, diags)
	}

	m := &Manifest{Path: path, Title: parsed.Title}
	seen := make(map[string]bool, len(parsed.Scripts))
	for _, s := range parsed.Scripts {
		if s.Handle == "" {
			return nil, fmt.Errorf("site manifest %s: script label must not be empty", path)
		}
		if seen[s.Handle] {
			return nil, fmt.Errorf("site manifest %s: duplicate script %q", path, s.Handle)
		}
		seen[s.Handle] = true
		m.Scripts = append(m.Scripts, Script{
			Handle:   s.Handle,
			Src:      s.Src,
			Deps:     s.Deps,
			Version:  s.Version,
			InFooter: s.InFooter,
			Worker:   s.Worker,
			Before:   s.Before,
			After:    s.After,
		})
	}

	if len(parsed.Partytown) > 1 {
		return nil, fmt.Errorf("site manifest %s: only one partytown block is allowed", path)
	}
	if len(parsed.Partytown) == 1 {
		entries, err := decodePartytown(parsed.Partytown[0].Body)
		if err != nil {
			return nil, fmt.Errorf("site manifest %s: %w", path, err)
		}
		m.Partytown = entries
	}
	return m, nil
}

// decodePartytown encodes every attribute of the block as JSON, in file order.
func decodePartytown(body hcl.Body) ([]Entry, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	list := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Range.Start.Byte < list[j].Range.Start.Byte
	})

	entries := make([]Entry, 0, len(list))
	for _, a := range list {
		val, diags := a.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("partytown.%s: %w", a.Name, err)
		}
		entries = append(entries, Entry{Key: a.Name, Value: raw})
	}
	return entries, nil
}

// Apply registers and enqueues the manifest's scripts.
func (m *Manifest) Apply(reg *scripts.Registry) {
	for _, s := range m.Scripts {
		if !reg.Add(s.Handle, s.Src, s.Deps, s.Version, scripts.Args{InFooter: s.InFooter, Worker: s.Worker}) {
			log.Printf("site: script %q already registered, skipping", s.Handle)
			continue
		}
		for _, js := range s.Before {
			reg.AddInlineScript(s.Handle, js, scripts.PositionBefore)
		}
		for _, js := range s.After {
			reg.AddInlineScript(s.Handle, js, scripts.PositionAfter)
		}
		reg.Enqueue(s.Handle)
	}
}

// ConfigFilter adds the partytown block's options to the configuration.
func (m *Manifest) ConfigFilter() offload.ConfigFilter {
	return func(cfg *offload.Config) *offload.Config {
		for _, e := range m.Partytown {
			cfg.Set(e.Key, e.Value)
		}
		return cfg
	}
}
