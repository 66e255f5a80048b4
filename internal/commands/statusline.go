package commands

import (
	"fmt"

	"github.com/sdpower/ccquota-go/internal/output"
	"github.com/sdpower/ccquota-go/internal/quota"
	"github.com/spf13/cobra"
)

func NewStatuslineCommand(opts *GlobalOptions) *cobra.Command {
	var (
		format  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "statusline",
		Short: "Print the quota segment for a statusline",
		Long: `Print the remaining quota as a compact statusline segment.

The host statusline JSON is read from stdin when piped. Nothing is printed
when no quota data can be obtained.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q, use text or json", format)
			}

			formatter := output.NewFormatter(output.FormatterOptions{
				Format:  format,
				NoColor: noColor,
			})

			input := readInput(cmd.InOrStdin())
			segment, ok := quota.New(opts.Paths()).Collect(cmd.Context(), input)
			if !ok {
				return nil
			}

			out, err := formatter.FormatSegment(segment)
			if err != nil {
				return fmt.Errorf("failed to format segment: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
