package config

import (
	"log"
	"sync"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"webworker"`
	Port    string `env:"PORT" envDefault:"8080"`
	Env     string `env:"APP_ENV" envDefault:"production"`

	// WPDebug and ScriptDebug mirror the host's debug switches. Both on adds
	// debug=true to the Partytown configuration; ScriptDebug alone selects
	// the unminified snippet.
	WPDebug     bool `env:"WP_DEBUG"`
	ScriptDebug bool `env:"SCRIPT_DEBUG"`

	PluginDir  string `env:"PLUGIN_DIR" envDefault:"."`
	PluginsURL string `env:"PLUGINS_URL" envDefault:"/wp-content/plugins"`

	SiteManifest       string `env:"SITE_MANIFEST" envDefault:"site.hcl"`
	SiteReloadSchedule string `env:"SITE_RELOAD_SCHEDULE" envDefault:"@every 1m"`
	PageCacheTTL       int64  `env:"PAGE_CACHE_TTL" envDefault:"0"`
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		cfg, err := Parse()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		AppConfig = cfg
	})
}

// Parse reads a Config from the process environment.
func Parse() (*Config, error) {
	return ParseEnv(nil)
}

// ParseEnv reads a Config from environ, or the process environment when nil.
func ParseEnv(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, err
	}
	return cfg, nil
}
