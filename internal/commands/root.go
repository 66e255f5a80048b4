package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the ccquota command tree. Running it without a
// subcommand behaves like "ccquota statusline".
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}
	statusline := NewStatuslineCommand(opts)

	rootCmd := &cobra.Command{
		Use:   "ccquota",
		Short: "Remaining API quota for the Claude Code statusline",
		Long: `A statusline segment that shows how much API quota remains.

Results are cached on disk so the endpoint is queried at most once per cache TTL.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.ConfigureLogging(cmd.ErrOrStderr())
		},
		RunE: statusline.RunE,
	}
	rootCmd.Flags().AddFlagSet(statusline.Flags())

	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "Directory holding quota.toml, quota_token and the cache")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Log pipeline decisions to stderr")

	rootCmd.AddCommand(
		statusline,
		NewStatusCommand(opts),
		NewMonitorCommand(opts),
	)

	return rootCmd
}
