package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ccquota-go/internal/types"
)

// StatusReport is what the status command knows after one pipeline run.
type StatusReport struct {
	Outcome    string
	Provider   string
	APIURL     string
	FetchedAt  time.Time // zero when no data was obtained
	Now        time.Time
	TTL        time.Duration
	ConfigFile string
	TokenFile  string
	CacheFile  string
	HasToken   bool
	Segment    *types.SegmentResult
}

// TableWriterFormatter renders the status report as a bordered table.
type TableWriterFormatter struct {
	noColor  bool
	renderer *lipgloss.Renderer
}

func NewTableWriterFormatter(noColor bool) *TableWriterFormatter {
	r := lipgloss.NewRenderer(io.Discard)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.ANSI256)
	}
	return &TableWriterFormatter{noColor: noColor, renderer: r}
}

func (f *TableWriterFormatter) FormatStatus(report StatusReport) string {
	var output strings.Builder

	output.WriteString("\n")
	output.WriteString(" ╭──────────────────────────────╮\n")
	output.WriteString(" │                              │\n")
	output.WriteString(" │  Claude Code Quota - Status  │\n")
	output.WriteString(" │                              │\n")
	output.WriteString(" ╰──────────────────────────────╯\n\n")

	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"Field", "Value"})

	table.Append([]string{"Outcome", f.outcomeCell(report)})
	table.Append([]string{"Provider", report.Provider})
	table.Append([]string{"Endpoint", report.APIURL})
	table.Append([]string{"Fetched", f.fetchedCell(report)})
	table.Append([]string{"Cache TTL", formatDuration(report.TTL)})
	table.Append([]string{"Config", report.ConfigFile})
	table.Append([]string{"Token", f.tokenCell(report)})
	table.Append([]string{"Cache", report.CacheFile})

	if report.Segment != nil {
		table.Append([]string{"Primary", report.Segment.Primary})
		table.Append([]string{"Secondary", report.Segment.Secondary})

		keys := make([]string, 0, len(report.Segment.Metadata))
		for k := range report.Segment.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			table.Append([]string{k, report.Segment.Metadata[k]})
		}
	}

	table.Render()
	output.WriteString(buf.String())
	return output.String()
}

func (f *TableWriterFormatter) outcomeCell(report StatusReport) string {
	color := "red"
	switch {
	case report.Segment == nil:
	case report.Outcome == "stale cache":
		color = "yellow"
	default:
		color = "green"
	}
	return f.renderer.NewStyle().Bold(true).Foreground(PaletteColor(color)).Render(report.Outcome)
}

func (f *TableWriterFormatter) fetchedCell(report StatusReport) string {
	if report.FetchedAt.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s (%s ago)",
		report.FetchedAt.Local().Format("2006-01-02 15:04:05"),
		formatDuration(report.Now.Sub(report.FetchedAt)))
}

func (f *TableWriterFormatter) tokenCell(report StatusReport) string {
	if report.HasToken {
		return report.TokenFile
	}
	return report.TokenFile + " (missing)"
}
