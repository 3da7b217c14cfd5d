package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// OutcomeMsg carries one per-file outcome into the progress model.
type OutcomeMsg shadowforensic.Outcome

// FinishedMsg ends the progress view.
type FinishedMsg struct {
	Err error
}

// ProgressModel renders live counters for a recovery run.
type ProgressModel struct {
	title   string
	spinner spinner.Model
	keys    KeyMap

	recovered int
	failed    int
	skipped   int
	bytes     int64
	current   string

	done   bool
	hidden bool
	err    error
}

// NewProgressModel creates a progress view titled title.
func NewProgressModel(title string) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ProgressModel{
		title:   title,
		spinner: s,
		keys:    DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.hidden = true
			return m, tea.Quit
		}
	case OutcomeMsg:
		switch msg.Status {
		case shadowforensic.StatusRecovered:
			m.recovered++
			m.bytes += msg.Bytes
		case shadowforensic.StatusFailed:
			m.failed++
		case shadowforensic.StatusSkipped:
			m.skipped++
		}
		m.current = msg.Path
		return m, nil
	case FinishedMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	if m.hidden {
		return WarningStyle.Render("Progress hidden; recovery continues until every file is processed.") + "\n"
	}

	var b strings.Builder
	switch {
	case m.done && m.err != nil:
		b.WriteString(ErrorStyle.Render(SymbolCross+" "+m.title) + "\n")
	case m.done:
		b.WriteString(SuccessStyle.Render(SymbolCheck+" "+m.title) + "\n")
	default:
		b.WriteString(m.spinner.View() + " " + TitleStyle.Render(m.title) + "\n")
	}

	b.WriteString(StatsStyle.Render(m.Stats()) + "\n")
	if !m.done && m.current != "" {
		b.WriteString(PathStyle.Render(m.current) + "\n")
	}
	if !m.done {
		b.WriteString(HelpStyle.Render(m.keys.HelpText()) + "\n")
	}
	return b.String()
}

// Stats renders the counters as a single line.
func (m ProgressModel) Stats() string {
	return fmt.Sprintf("%s %d recovered (%s) %s %d failed %s %d skipped",
		SymbolCheck, m.recovered, FormatBytes(m.bytes),
		SymbolCross, m.failed,
		SymbolSkip, m.skipped)
}

// ProgressSink forwards engine outcomes to a running tea.Program.
type ProgressSink struct {
	send func(tea.Msg)
}

// NewProgressSink wraps p.Send.
func NewProgressSink(p *tea.Program) *ProgressSink {
	return &ProgressSink{send: p.Send}
}

func (s *ProgressSink) Record(o shadowforensic.Outcome) { s.send(OutcomeMsg(o)) }
func (s *ProgressSink) Flush() error                    { return nil }

var _ shadowforensic.Sink = (*ProgressSink)(nil)

// RunWithProgress calls run with a sink feeding a live progress view on out.
// When the terminal is not interactive, run receives a no-op sink instead.
// run always completes before RunWithProgress returns, even when the user
// hides the view.
func RunWithProgress(title string, out io.Writer, run func(shadowforensic.Sink) error) error {
	if !IsInteractive() {
		return run(shadowforensic.NopSink{})
	}

	p := tea.NewProgram(NewProgressModel(title), tea.WithOutput(out))
	result := make(chan error, 1)

	go func() {
		err := run(NewProgressSink(p))
		result <- err
		p.Send(FinishedMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		runErr := <-result
		if runErr != nil {
			return runErr
		}
		return fmt.Errorf("progress display: %w", err)
	}
	return <-result
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
