package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sdpower/ccquota-go/internal/presenter"
	"github.com/sdpower/ccquota-go/internal/types"
)

// Palette shared by the segment, the status table and the monitor.
var palette = map[string]lipgloss.Color{
	presenter.ColorGreen:  lipgloss.Color("46"),
	presenter.ColorCyan:   lipgloss.Color("51"),
	presenter.ColorYellow: lipgloss.Color("226"),
	presenter.ColorRed:    lipgloss.Color("196"),
}

// PaletteColor resolves a presenter color name, defaulting to light gray.
func PaletteColor(name string) lipgloss.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return lipgloss.Color("252")
}

type Formatter struct {
	options  FormatterOptions
	renderer *lipgloss.Renderer
}

type FormatterOptions struct {
	Format  string // "text", "json"
	NoColor bool
}

// NewFormatter builds a formatter for segment output. Statusline hosts read
// our stdout through a pipe, so color support is forced rather than
// detected.
func NewFormatter(opts FormatterOptions) *Formatter {
	if opts.Format == "" {
		opts.Format = "text"
	}

	r := lipgloss.NewRenderer(io.Discard)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.ANSI256)
	}
	return &Formatter{options: opts, renderer: r}
}

func (f *Formatter) FormatSegment(segment types.SegmentResult) (string, error) {
	switch f.options.Format {
	case "json":
		return f.FormatJSON(segment)
	case "text":
		return f.formatText(segment), nil
	default:
		return "", fmt.Errorf("unknown format %q", f.options.Format)
	}
}

func (f *Formatter) FormatJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (f *Formatter) formatText(segment types.SegmentResult) string {
	primaryStyle := f.renderer.NewStyle().
		Foreground(PaletteColor(segment.Metadata["color"]))
	secondaryStyle := f.renderer.NewStyle().
		Foreground(lipgloss.Color("245"))

	parts := []string{primaryStyle.Render(segment.Primary)}
	if segment.Secondary != "" {
		parts = append(parts, secondaryStyle.Render(segment.Secondary))
	}
	return strings.Join(parts, " ")
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
