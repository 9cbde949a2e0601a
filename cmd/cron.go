package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"webworker.GO/config"
	"webworker.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	Long: `Start the cron scheduler or run a single job by name.

Built-in jobs:
  site:reload  re-read SITE_MANIFEST; when it changed, drop the cached
               Partytown snippet and purge the Redis page cache.
               Scheduled by SITE_RELOAD_SCHEDULE (empty disables it).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig()
		config.InitRedis()
		if jobName != "" {
			j, ok := cron.Lookup(jobName)
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", jobName)
			j.Run(args...)
			return nil
		}
		fmt.Println("Starting cron scheduler...")
		c, err := cron.StartCron(cronSchedules(cfg))
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Println("Cron scheduler started. Press Ctrl+C to exit.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
