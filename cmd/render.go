package cmd

import (
	"github.com/spf13/cobra"

	"webworker.GO/html"
)

var (
	manifestPath string
	overrides    []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the site manifest page to stdout",
	RunE: func(c *cobra.Command, args []string) error {
		cfg := appConfig()
		m, err := loadManifest(cfg)
		if err != nil {
			return err
		}
		opts, err := pluginOptions(cfg, overrides)
		if err != nil {
			return err
		}
		return html.RenderPage(c.OutOrStdout(), m, opts)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Site manifest (defaults to SITE_MANIFEST)")
	renderCmd.Flags().StringArrayVar(&overrides, "set", nil, "Override a configuration value, path=value (repeatable)")
	rootCmd.AddCommand(renderCmd)
}
