package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/localsettings/internal/timeline"
	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Home timeline helpers",
}

var timelineLoadCmd = &cobra.Command{
	Use:   "load <url>",
	Short: "Load the home timeline, polling while it is partial",
	Long: `Fetches the home timeline from url. While the server answers 206 (the
timeline is still being regenerated) the request is repeated every
timeline.poll_interval. Statuses are filtered with the account's home
column settings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, _ := cmd.Flags().GetString("me")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()
		if cmd.Flags().Changed("interval") {
			svc.Config.Timeline.PollInterval, _ = cmd.Flags().GetDuration("interval")
		}

		filter, err := svc.HomeFilter(cmd.Context(), account(cmd), me)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		statuses, err := svc.Home(args[0]).Load(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, s := range filter.Apply(statuses) {
			if s.SpoilerText != "" {
				fmt.Fprintf(out, "%s [CW: %s]\n", s.ID, s.SpoilerText)
				continue
			}
			fmt.Fprintf(out, "%s %s\n", s.ID, s.Content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.AddCommand(timelineLoadCmd)
	timelineLoadCmd.Flags().String("me", "", "Account id of the viewer; own statuses bypass the regex filter")
	timelineLoadCmd.Flags().Duration("interval", timeline.DefaultPollInterval, "Poll interval (overrides timeline.poll_interval)")
	timelineLoadCmd.Flags().Duration("timeout", 2*time.Minute, "Give up after this long; 0 waits forever")
}
