// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/torusk/Dvorak-Typing/internal/engine"
	"github.com/torusk/Dvorak-Typing/internal/keyboard"
	"github.com/torusk/Dvorak-Typing/internal/linefit"
	"github.com/torusk/Dvorak-Typing/internal/model"
	statsPkg "github.com/torusk/Dvorak-Typing/internal/stats"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = pendingStyle.Copy().Underline(true)
	contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	summaryStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	cfg      model.Config
	exercise model.Exercise
	session  *engine.Session
	resolver *keyboard.Resolver

	width  int
	height int

	history string
	summary *model.SessionSummary
}

// NewModel constructs a typing TUI model for one exercise.
func NewModel(cfg model.Config, exercise model.Exercise) *Model {
	session := engine.NewSession()
	session.LoadText(exercise.Text)
	return &Model{
		cfg:      cfg,
		exercise: exercise,
		session:  session,
		resolver: keyboard.NewResolver(),
	}
}

// Summary returns the completion summary once the session has finished.
func (m *Model) Summary() (model.SessionSummary, bool) {
	if m.summary == nil {
		return model.SessionSummary{}, false
	}
	return *m.summary, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refitLine()
		return m, nil
	case tea.KeyMsg:
		if m.summary != nil {
			switch msg.Type {
			case tea.KeyCtrlC, tea.KeyEnter, tea.KeyEsc:
				return m, tea.Quit
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.session.Backspace()
			return m, nil
		case tea.KeyTab:
			if m.cfg.Remap {
				m.resolver.ToggleSticky()
			}
			return m, nil
		case tea.KeySpace:
			m.handleSpace()
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) handleSpace() {
	if sig := m.session.InputSpace(); sig == engine.SignalAdvanceLine {
		m.advanceLine()
	}
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		ch := r
		if m.cfg.Remap {
			resolved, ok := m.resolver.ResolveTyped(r)
			if !ok {
				continue
			}
			ch = resolved
		}
		if ch == ' ' {
			m.handleSpace()
			continue
		}
		m.session.InputChar(ch)
	}
}

func (m *Model) advanceLine() {
	m.history = m.session.Line()
	m.session.AdvanceLine()
	if m.session.State() == engine.StateSessionComplete {
		if sum, ok := m.session.Summary(); ok {
			m.summary = &sum
		}
		return
	}
	m.fitNextLine()
}

// fitNextLine installs a fresh line from the unconsumed pool.
func (m *Model) fitNextLine() {
	pool := m.session.Remaining()
	if len(pool) == 0 {
		return
	}
	fitted := linefit.Fit(pool, m.contentWidth(), runewidth.StringWidth, spaceWidth())
	m.session.SetCurrentLine(fitted)
}

// refitLine recomputes the current line for the new viewport without
// truncating typed progress. Bubble Tea delivers only the latest window
// size, so a newer resize supersedes any pending one.
func (m *Model) refitLine() {
	if m.session.State() == engine.StateSessionComplete {
		return
	}
	pool := m.session.Remaining()
	if len(pool) == 0 {
		return
	}
	if m.session.Line() == "" {
		m.fitNextLine()
		return
	}
	fitted := linefit.Refit(pool, m.contentWidth(), runewidth.StringWidth, spaceWidth(),
		m.session.Line(), m.session.Cursor())
	m.session.SetCurrentLine(fitted)
}

func (m *Model) contentWidth() int {
	pct := m.cfg.WidthPct
	if pct <= 0 || pct > 1 {
		pct = 0.70
	}
	w := int(float64(m.width) * pct)
	if w < 1 {
		w = 1
	}
	return w
}

func spaceWidth() int {
	return runewidth.StringWidth(" ")
}

// previewLine fits the words after the current line for the preview row.
func (m *Model) previewLine() string {
	pool := m.session.Remaining()
	consumed := m.session.LineWordCount()
	if consumed >= len(pool) {
		return ""
	}
	fitted := linefit.Fit(pool[consumed:], m.contentWidth(), runewidth.StringWidth, spaceWidth())
	return strings.Join(fitted, " ")
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.summary != nil {
		return m.renderSummary()
	}
	if m.session.State() == engine.StateNoText {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			footerStyle.Render("No text loaded. Select a text file."))
	}

	lines := make([]string, 0, 3)
	if m.cfg.Preview {
		lines = append(lines, contextStyle.Render(m.history))
	}
	lines = append(lines, renderLine(m.session.Line(), m.session.Marks(), m.session.Cursor()))
	if m.cfg.Preview {
		lines = append(lines, contextStyle.Render(m.previewLine()))
	}
	content := strings.Join(lines, "\n")

	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	total := m.session.WordCount()
	progress := 0
	if total > 0 {
		progress = m.session.WordOffset() * 100 / total
	}
	segments := []string{
		m.exercise.Name,
		fmt.Sprintf("Progress %d%%", progress),
	}
	if m.cfg.Remap {
		mode := "Dvorak remap"
		if m.resolver.Active() {
			mode += " SHIFT"
		}
		segments = append(segments, mode)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderSummary() string {
	sum := *m.summary
	rows := []string{
		titleStyle.Render("Session complete"),
		"",
		fmt.Sprintf("Time   %s", statsPkg.FormatDuration(sum.DurationMs())),
		fmt.Sprintf("Speed  %.1f WPM", sum.WPM),
		fmt.Sprintf("Typed  %d chars, %d words", sum.Chars, sum.Words),
	}
	if len(sum.LineWPMs) > 1 {
		curve := statsPkg.MovingAverage(sum.LineWPMs, 2)
		rows = append(rows, fmt.Sprintf("Lines  %s", statsPkg.Sparkline(curve)))
	}
	rows = append(rows, "", footerStyle.Render("enter to exit"))
	card := summaryStyle.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
