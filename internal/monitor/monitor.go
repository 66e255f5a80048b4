package monitor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccquota-go/internal/presenter"
	"github.com/sdpower/ccquota-go/internal/quota"
	"github.com/sdpower/ccquota-go/internal/types"
)

const barWidth = 40

var (
	emptyColor = colorful.Color{R: 0.94, G: 0.27, B: 0.27}
	fullColor  = colorful.Color{R: 0.13, G: 0.77, B: 0.37}
)

// Resolver is the part of the quota pipeline the monitor drives.
type Resolver interface {
	Resolve(ctx context.Context) quota.Result
}

type Monitor struct {
	options  Options
	resolver Resolver
}

type Options struct {
	Interval time.Duration
	NoColor  bool
}

type model struct {
	options    Options
	resolver   Resolver
	result     quota.Result
	segment    *types.SegmentResult
	lastUpdate time.Time
	loaded     bool
}

type tickMsg time.Time

type resultMsg struct {
	result quota.Result
	at     time.Time
}

func New(resolver Resolver, opts Options) *Monitor {
	if opts.Interval == 0 {
		opts.Interval = 30 * time.Second
	}

	return &Monitor{
		options:  opts,
		resolver: resolver,
	}
}

func (m *Monitor) Start(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("live monitoring requires an interactive terminal (TTY)")
	}

	p := tea.NewProgram(
		initialModel(m.resolver, m.options),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func initialModel(resolver Resolver, opts Options) model {
	return model{
		options:  opts,
		resolver: resolver,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.options.Interval),
		m.refresh(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}

	case tickMsg:
		return m, tea.Batch(
			tickCmd(m.options.Interval),
			m.refresh(),
		)

	case resultMsg:
		m.result = msg.result
		m.lastUpdate = msg.at
		m.loaded = true
		m.segment = nil
		if msg.result.OK() {
			segment := msg.result.Provider.Render(msg.result.Data, msg.result.Config)
			m.segment = &segment
		}
	}

	return m, nil
}

func (m model) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)
	if m.options.NoColor {
		headerStyle = lipgloss.NewStyle()
	}

	content := headerStyle.Render("Claude Code Quota Monitor")
	content += "\n\n"

	switch {
	case !m.loaded:
		content += "Loading quota...\n"
	case !m.result.OK():
		content += "No quota data available. Check the token file and endpoint.\n"
	default:
		for _, g := range m.result.Provider.Gauges(m.result.Data, m.result.Config) {
			content += m.renderGauge(g)
			content += "\n"
		}
		content += "\n"
		content += m.segment.Primary
		if m.segment.Secondary != "" {
			content += "  " + m.segment.Secondary
		}
		content += "\n"
	}

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if m.options.NoColor {
		footerStyle = lipgloss.NewStyle()
	}
	footer := fmt.Sprintf("\nSource: %s", m.result.Outcome)
	if !m.result.FetchedAt.IsZero() {
		footer += fmt.Sprintf("  Fetched: %s", m.result.FetchedAt.Local().Format("15:04:05"))
	}
	if !m.lastUpdate.IsZero() {
		footer += fmt.Sprintf("  Last Update: %s", m.lastUpdate.Format("15:04:05"))
	}
	footer += fmt.Sprintf("\n↻ Refreshing every %ds  •  Press 'q' to quit, 'r' to refresh", int(m.options.Interval.Seconds()))

	content += footerStyle.Render(footer)
	return content
}

// renderGauge draws one labelled bar. The filled part is colored along a
// red-to-green gradient by how much quota remains.
func (m model) renderGauge(g presenter.Gauge) string {
	filled := int(g.Fraction * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(gaugeColor(g.Fraction))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	if m.options.NoColor {
		filledStyle = lipgloss.NewStyle()
		emptyStyle = lipgloss.NewStyle()
	}

	bar := "["
	bar += filledStyle.Render(strings.Repeat("█", filled))
	bar += emptyStyle.Render(strings.Repeat("░", barWidth-filled))
	bar += "]"

	return fmt.Sprintf("%s %-8s %s %5s%%  %s",
		presenter.BatteryIcon(g.Fraction),
		g.Label,
		bar,
		presenter.FormatPercent(g.Fraction),
		g.Text,
	)
}

func gaugeColor(fraction float64) lipgloss.Color {
	return lipgloss.Color(emptyColor.BlendLuv(fullColor, fraction).Clamped().Hex())
}

func (m model) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return resultMsg{
			result: m.resolver.Resolve(ctx),
			at:     time.Now(),
		}
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
