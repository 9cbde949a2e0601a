package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"webworker.GO/config"
)

const testManifest = `
title = "Demo"

script "gtag" {
  src    = "https://example.com/gtag.js"
  worker = true
}

partytown {
  forward = ["dataLayer.push"]
}
`

func setupSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "build"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "build", "partytown.js"), []byte("/* snippet */"), 0o644); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(dir, "site.hcl")
	if err := os.WriteFile(manifest, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		PluginDir:    dir,
		PluginsURL:   "/wp-content/plugins",
		SiteManifest: manifest,
	}
	t.Cleanup(func() {
		config.AppConfig = prev
		manifestPath = ""
		overrides = nil
		prettyConfig = false
		jobName = ""
		reloader.use(nil)
	})
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCmd(t *testing.T) {
	setupSite(t)
	out, err := run(t, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"<title>Demo</title>",
		"/* snippet */",
		`<script type="text/partytown" src="https://example.com/gtag.js" id="gtag-js"></script>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
}

func TestRenderCmd_MissingManifest(t *testing.T) {
	dir := setupSite(t)
	if _, err := run(t, "render", "--manifest", filepath.Join(dir, "none.hcl")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestConfigCmd_Overrides(t *testing.T) {
	setupSite(t)
	out, err := run(t, "config", "--set", "forward.1=fbq", "--set", `mainWindowAccessors=["_hsq"]`)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	doc := gjson.Parse(out)
	if got := doc.Get("lib").String(); got != "/wp-content/plugins/web-worker-offloading/build/" {
		t.Errorf("lib = %q", got)
	}
	if got := doc.Get("forward.#").Int(); got != 2 {
		t.Errorf("len(forward) = %d, want 2 in %s", got, out)
	}
	if got := doc.Get("forward.1").String(); got != "fbq" {
		t.Errorf("forward.1 = %q", got)
	}
	if got := doc.Get("mainWindowAccessors.0").String(); got != "_hsq" {
		t.Errorf("mainWindowAccessors.0 = %q", got)
	}
}

func TestConfigCmd_BadOverride(t *testing.T) {
	setupSite(t)
	if _, err := run(t, "config", "--set", "novalue"); err == nil {
		t.Error("expected error for override without '='")
	}
}
