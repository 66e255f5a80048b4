package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/monitor"
	"github.com/sdpower/ccquota-go/internal/quota"
	"github.com/spf13/cobra"
)

const minMonitorInterval = 5 * time.Second

func NewMonitorCommand(opts *GlobalOptions) *cobra.Command {
	var (
		interval int
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Monitor remaining quota in real-time",
		Long:  `Show a live dashboard of the remaining quota, refreshed through the same cache as the statusline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := opts.Paths()

			mon := monitor.New(quota.New(paths), monitor.Options{
				Interval: monitorInterval(interval, config.Resolve(paths.ConfigFile())),
				NoColor:  noColor,
			})

			if err := mon.Start(cmd.Context()); err != nil {
				return fmt.Errorf("failed to start monitor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&interval, "interval", 0, "Update interval in seconds (defaults to the cache TTL)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// monitorInterval picks the refresh period: the flag if given, otherwise the
// cache TTL, never faster than minMonitorInterval.
func monitorInterval(seconds int, cfg config.QuotaConfig) time.Duration {
	d := time.Duration(seconds) * time.Second
	if seconds <= 0 {
		d = cfg.TTL()
	}
	if d < minMonitorInterval {
		d = minMonitorInterval
	}
	return d
}
