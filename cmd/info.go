package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"webworker.GO/offload"
)

func init() {
	Register(&cobra.Command{
		Use:   "offload:info",
		Short: "Print web worker offloading identifiers",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintf(c.OutOrStdout(), "handle:  %s\nversion: %s\ntype:    %s\nhook:    %s\n",
				offload.Handle, offload.Version, offload.ScriptType, offload.ConfigurationHook)
		},
	})
}
