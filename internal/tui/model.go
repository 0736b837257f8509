package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"clipdate/internal/domain"
	"clipdate/internal/presentation"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseProcessing
	PhaseDone
	PhaseError
)

// recentLimit is how many finished files stay listed while processing.
const recentLimit = 6

// Messages for the TUI
type (
	StartMsg struct {
		Dir   string
		Total int
	}
	FileDoneMsg struct {
		Done    int
		Total   int
		Outcome domain.Outcome
	}
	FinishMsg struct {
		Summary domain.Summary
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// Config for the TUI. The walk itself runs outside the program and reports
// through Observer.
type Config struct {
	Dir    string
	DryRun bool
}

// Model is the main TUI model
type Model struct {
	config   Config
	Phase    Phase
	spinner  spinner.Model
	progress progress.Model
	done     int
	total    int
	recent   []domain.Outcome
	Summary  domain.Summary
	Err      error
	Quitting bool
	width    int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case StartMsg:
		m.Phase = PhaseProcessing
		m.total = msg.Total
		return m, tickCmd()

	case FileDoneMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.recent = append(m.recent, msg.Outcome)
		if len(m.recent) > recentLimit {
			m.recent = m.recent[len(m.recent)-recentLimit:]
		}
		return m, nil

	case FinishMsg:
		m.Phase = PhaseDone
		m.Summary = msg.Summary
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning || m.Phase == PhaseProcessing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseProcessing {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.done)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(fmt.Sprintf("%s Scanning for clips...", m.spinner.View()))
	case PhaseProcessing:
		b.WriteString(m.renderProcessing())
		b.WriteString("\n")
		b.WriteString(m.renderRecent())
	case PhaseDone:
		b.WriteString(m.renderRecent())
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("🎬 clipdate")
	subtitle := subtitleStyle.Render("Recording dates from filenames")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Directory: %s", iconFolder, shortenPath(m.config.Dir))),
	)
}

func (m Model) renderProcessing() string {
	var b strings.Builder

	label := "Updating"
	if m.config.DryRun {
		label = "Checking"
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}

	b.WriteString(fmt.Sprintf("  %s %s...\n\n", m.spinner.View(), label))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.done, m.total)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	return b.String()
}

func (m Model) renderRecent() string {
	if len(m.recent) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Files"))
	b.WriteString("\n\n")
	for _, o := range m.recent {
		b.WriteString("  ")
		b.WriteString(formatOutcome(o))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	for _, line := range presentation.SummaryLines(m.Summary) {
		label, value, ok := strings.Cut(line, ": ")
		if !ok {
			b.WriteString("\n")
			b.WriteString(highlightBoxStyle.Render("🔍 " + line))
			b.WriteString("\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render(label+":"), statValueStyle.Render(value)))
	}

	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning, PhaseProcessing:
		help = "Press q to quit"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func formatOutcome(o domain.Outcome) string {
	name := fileNameStyle.Render(o.Candidate.Name)
	date := dateStyle.Render(o.Timestamp.String())

	switch o.Status {
	case domain.StatusUpdated:
		return fmt.Sprintf("%s %s  %s", successStyle.Render(iconSuccess), name, date)
	case domain.StatusPlanned:
		return fmt.Sprintf("%s %s  %s", plannedStyle.Render(iconArrow), name, date)
	case domain.StatusUnchanged:
		return fmt.Sprintf("%s %s  %s", dateStyle.Render(iconUnchanged), name, date)
	case domain.StatusSkipped:
		return fmt.Sprintf("%s %s  %s", warningStyle.Render(iconSkipped), name, dateStyle.Render("no date in filename"))
	default:
		return fmt.Sprintf("%s %s  %s", errorStyle.Render(iconError), name, errorStyle.Render(presentation.FailureText(o.Err)))
	}
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
