package commands

import (
	"fmt"
	"time"

	"github.com/sdpower/ccquota-go/internal/credential"
	"github.com/sdpower/ccquota-go/internal/output"
	"github.com/sdpower/ccquota-go/internal/quota"
	"github.com/spf13/cobra"
)

func NewStatusCommand(opts *GlobalOptions) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show quota, cache and configuration details",
		Long:  `Run the quota pipeline once and show where the data came from, how old it is, and every raw field.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := opts.Paths()
			result := quota.New(paths).Resolve(cmd.Context())
			_, hasToken := credential.Load(paths.TokenFile())

			report := output.StatusReport{
				Outcome:    result.Outcome.String(),
				Provider:   result.Provider.Name(),
				APIURL:     result.Config.APIURL,
				Now:        time.Now(),
				TTL:        result.Config.TTL(),
				ConfigFile: paths.ConfigFile(),
				TokenFile:  paths.TokenFile(),
				CacheFile:  paths.CacheFile(),
				HasToken:   hasToken,
			}
			if result.OK() {
				segment := result.Provider.Render(result.Data, result.Config)
				report.Segment = &segment
				report.FetchedAt = result.FetchedAt
			}

			fmt.Fprint(cmd.OutOrStdout(), output.NewTableWriterFormatter(noColor).FormatStatus(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
