package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"webworker.GO/html"
)

var prettyConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the Partytown configuration for the site manifest",
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
		out := html.Plugin(m, opts).ConfigJSON()
		if prettyConfig {
			out = strings.TrimSpace(gjson.Get(out, "@pretty").String())
		}
		fmt.Fprintln(c.OutOrStdout(), out)
		return nil
	},
}

func init() {
	configCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Site manifest (defaults to SITE_MANIFEST)")
	configCmd.Flags().StringArrayVar(&overrides, "set", nil, "Override a configuration value, path=value (repeatable)")
	configCmd.Flags().BoolVar(&prettyConfig, "pretty", false, "Indent the output")
	rootCmd.AddCommand(configCmd)
}
