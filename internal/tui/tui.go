// Package tui is the Bubble Tea front-end for a chipless table.
package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/console"
)

const (
	paneLog = iota
	paneInput
)

// dealerStepMsg asks the model to play the next dealer step.
type dealerStepMsg struct{}

// Model is the Bubble Tea model for one table.
type Model struct {
	console *console.Console
	pacer   *Pacer
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	focusedPane int
	dealing     bool
	quitting    bool

	// Dimensions
	width       int
	height      int
	initialized bool
}

// New returns a model driving c. A nil pacer plays the dealer without delay.
func New(c *console.Console, pacer *Pacer, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if pacer == nil {
		pacer = NewPacer(nil, 0)
	}

	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Type a command, 'help' for the list"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = ActiveSeatStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(chalk)
	ti.Prompt = "> "

	m := &Model{
		console:     c,
		pacer:       pacer,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: paneInput,
	}
	m.AddLogEntry(fmt.Sprintf("*** %s ***", strings.ToUpper(c.Game())))
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case dealerStepMsg:
		return m, m.dealerStep()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == paneLog {
				m.focusedPane = paneInput
				m.actionInput.Focus()
			} else {
				m.focusedPane = paneLog
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == paneInput {
				line := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if cmd := m.submit(line); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		case "up", "k":
			if m.focusedPane == paneLog {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == paneLog {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == paneLog {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == paneLog {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == paneLog {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == paneLog {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs one input line and returns the pacing command when the dealer
// has to play.
func (m *Model) submit(line string) tea.Cmd {
	if line == "" {
		return nil
	}
	if m.dealing {
		m.AddLogEntry(InfoStyle.Render("Dealer is playing..."))
		return nil
	}
	m.AddLogEntry(InfoStyle.Render("> " + line))

	out, err := m.console.Execute(line)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return nil
	}
	m.addLines(out.Lines)
	if out.Quit {
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	}
	if out.DealerPending {
		m.dealing = true
		return m.pacer.After(dealerStepMsg{})
	}
	return nil
}

func (m *Model) dealerStep() tea.Cmd {
	out, err := m.console.DealerStep()
	if err != nil {
		m.dealing = false
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return nil
	}
	m.addLines(out.Lines)
	if out.DealerPending {
		return m.pacer.After(dealerStepMsg{})
	}
	m.dealing = false
	return nil
}

func (m *Model) addLines(lines []string) {
	for _, l := range lines {
		m.AddLogEntry(l)
	}
}

// Dealing reports whether dealer play is in progress.
func (m *Model) Dealing() bool { return m.dealing }

// Log returns the log entries without styling.
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	for i, l := range m.gameLog {
		out[i] = ansi.ReplaceAllString(l, "")
	}
	return out
}

// AddLogEntry adds an entry to the game log and scrolls to it.
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(m.renderLogPane())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the table.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := paneStyle(m.focusedPane == paneInput).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := paneStyle(false).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(m.renderLogPane())
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := paneStyle(m.focusedPane == paneLog).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderLogPane() string {
	lines := make([]string, len(m.gameLog))
	for i, l := range m.gameLog {
		lines[i] = colorCards(l)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSidebarPane() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(strings.ToUpper(m.console.Game())))
	b.WriteString("\n\n")
	for _, s := range m.console.Seats() {
		name := s.Name
		switch {
		case s.IsDealer:
			name = DealerStyle.Render(name + " (D)")
		case s.Active:
			name = ActiveSeatStyle.Render("> " + name)
		}
		b.WriteString(name)
		b.WriteString("\n")
		b.WriteString("  " + netStyle(s.Net).Render(fmt.Sprintf("%+.2f", s.Net)))
		if s.Status != "" {
			b.WriteString(InfoStyle.Render("  " + s.Status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder
	if m.dealing {
		b.WriteString(PromptStyle.Render("Dealer is playing..."))
	} else {
		b.WriteString(PromptStyle.Render(m.console.Prompt()))
	}
	b.WriteString("\n")
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	if m.focusedPane == paneLog {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

func netStyle(v float64) lipgloss.Style {
	switch {
	case v > 0.005:
		return GainStyle
	case v < -0.005:
		return LossStyle
	default:
		return InfoStyle
	}
}

var (
	cardPattern = regexp.MustCompile(`(10|[2-9JQKA])[♥♦♣♠]`)
	ansi        = regexp.MustCompile("\x1b\\[[0-9;]*m")
)

// colorCards paints red suits red and black suits light.
func colorCards(line string) string {
	return cardPattern.ReplaceAllStringFunc(line, func(card string) string {
		if strings.ContainsAny(card, "♥♦") {
			return RedCardStyle.Render(card)
		}
		return BlackCardStyle.Render(card)
	})
}
