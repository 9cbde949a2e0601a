package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"webworker.GO/core/cache"
	"webworker.GO/core/registry"
	"webworker.GO/offload"
	"webworker.GO/site"
)

func TestApply_OffloadInfo(t *testing.T) {
	Apply()
	out, err := run(t, "offload:info")
	if err != nil {
		t.Fatalf("offload:info: %v", err)
	}
	for _, want := range []string{offload.Handle, offload.Version, offload.ScriptType, offload.ConfigurationHook} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestRegister_Panics(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		locked := registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd)
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
		defer func() {
			if locked {
				registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
			}
		}()
		defer func() {
			if recover() == nil {
				t.Error("expected panic on duplicate command")
			}
		}()
		Register(&cobra.Command{Use: "offload:info"})
	})
	t.Run("after apply", func(t *testing.T) {
		Apply()
		defer func() {
			if recover() == nil {
				t.Error("expected panic after Apply")
			}
		}()
		Register(&cobra.Command{Use: "late"})
	})
}

func TestCronStart_SiteReloadJob(t *testing.T) {
	setupSite(t)
	out, err := run(t, "cron:start", "--job", "site:reload")
	if err != nil {
		t.Fatalf("cron:start --job site:reload: %v", err)
	}
	if !strings.Contains(out, "Running cron job: site:reload") {
		t.Errorf("output = %q", out)
	}
}

func TestSiteReloader_DropsCachesOnlyOnChange(t *testing.T) {
	dir := setupSite(t)
	manifest := filepath.Join(dir, "site.hcl")
	store, err := site.NewStore(manifest)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	reloader.use(store)

	c := cache.GetInstance()
	key := offload.SnippetCacheTag + ":reload-test"
	c.Set(key, "snippet", 0, []string{offload.SnippetCacheTag})
	defer c.Delete(key)

	reloader.run()
	if _, ok := c.Get(key); !ok {
		t.Fatal("snippet cache dropped although the manifest did not change")
	}

	if err := os.WriteFile(manifest, []byte(`title = "Changed"`), 0o644); err != nil {
		t.Fatal(err)
	}
	reloader.run()
	if _, ok := c.Get(key); ok {
		t.Error("snippet cache kept after the manifest changed")
	}
	if got := store.Manifest().Title; got != "Changed" {
		t.Errorf("Title = %q, want Changed", got)
	}
}
