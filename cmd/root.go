package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"webworker.GO/config"
	"webworker.GO/core/cache"
	"webworker.GO/offload"
	"webworker.GO/site"
)

var rootCmd = &cobra.Command{
	Use:          "webworker",
	Short:        "Offload third-party scripts to a web worker with Partytown",
	SilenceUsage: true,
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func appConfig() *config.Config {
	if config.AppConfig == nil {
		config.LoadAppConfig()
	}
	return config.AppConfig
}

func manifestFile(cfg *config.Config) string {
	if manifestPath != "" {
		return manifestPath
	}
	return cfg.SiteManifest
}

func loadManifest(cfg *config.Config) (*site.Manifest, error) {
	return site.Load(manifestFile(cfg))
}

// pluginOptions maps the application config onto offload options. Each
// "path=value" override becomes a SetPath filter.
func pluginOptions(cfg *config.Config, overrides []string) (offload.Options, error) {
	opts := offload.Options{
		PluginsURL:  cfg.PluginsURL,
		Debug:       cfg.WPDebug,
		ScriptDebug: cfg.ScriptDebug,
		Assets:      os.DirFS(cfg.PluginDir),
		Cache:       cache.GetInstance(),
	}
	for _, o := range overrides {
		path, value, ok := strings.Cut(o, "=")
		if !ok || path == "" {
			return opts, fmt.Errorf("invalid override %q, want path=value", o)
		}
		opts.Filters = append(opts.Filters, offload.SetPath(path, value))
	}
	return opts, nil
}
