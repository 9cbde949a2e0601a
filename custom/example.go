package custom

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"webworker.GO/api"
	"webworker.GO/cmd"
	"webworker.GO/cron"
	"webworker.GO/offload"
)

// resolveURLScript proxies offloaded scripts through window.partytownProxyUrl
// when the page defines one. Functions cannot travel in the JSON config.
const resolveURLScript = `
window.partytown = {
	...(window.partytown || {}),
	resolveUrl: (url, location, type) => {
		if (type === 'script' && self.partytownProxyUrl) {
			const proxyUrl = new URL(self.partytownProxyUrl);
			proxyUrl.searchParams.append('url', url.href);
			return proxyUrl;
		}
		return url;
	},
};
`

func init() {
	// Configuration filter
	offload.RegisterConfigFilter("custom:main-window", 10, func(cfg *offload.Config) *offload.Config {
		cfg.Set("mainWindowAccessors", []string{"partytownProxyUrl"})
		return cfg
	})

	// Configuration script
	offload.RegisterConfigScript("custom:resolve-url", resolveURLScript)

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:resolve-url",
		Short: "Print the resolveUrl configuration script",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprint(c.OutOrStdout(), resolveURLScript)
		},
	})

	// Cron job
	cron.Register("custom:ping", "@every 1h", func(args ...string) {
		log.Println("Custom cron: ping", args)
	})

	// HTTP route
	api.RegisterGET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "version": offload.Version})
	})
}
