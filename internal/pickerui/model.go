// Package pickerui provides the Bubble Tea exercise picker.
package pickerui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/torusk/Dvorak-Typing/internal/model"
	"github.com/torusk/Dvorak-Typing/internal/textsource"
)

const previewChars = 40

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#4A4A4A"))
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea exercise picker.
type Model struct {
	exercises []model.Exercise
	table     table.Model

	input     textinput.Model
	inputMode bool

	errMsg string
	choice *model.Exercise

	width  int
	height int
}

// NewModel constructs a picker over the given exercise blocks.
func NewModel(exercises []model.Exercise) *Model {
	m := &Model{exercises: exercises}
	m.input = textinput.New()
	m.input.Prompt = "File: "
	m.input.Placeholder = "/path/to/exercises.txt"
	m.table = buildTable(exercises)
	return m
}

// Choice returns the selected exercise, if any.
func (m *Model) Choice() (model.Exercise, bool) {
	if m.choice == nil {
		return model.Exercise{}, false
	}
	return *m.choice, true
}

func buildTable(exercises []model.Exercise) table.Model {
	columns := []table.Column{
		{Title: "Exercise", Width: 24},
		{Title: "Words", Width: 6},
		{Title: "Preview", Width: previewChars},
	}
	rows := make([]table.Row, 0, len(exercises))
	for _, ex := range exercises {
		rows = append(rows, table.Row{
			ex.Name,
			fmt.Sprintf("%d", len(strings.Fields(ex.Text))),
			truncate(ex.Text, previewChars),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(minInt(len(rows)+1, 12)),
	)
	styles := table.DefaultStyles()
	styles.Header = headerStyle
	styles.Selected = selectStyle
	t.SetStyles(styles)
	return t
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
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
		return m, nil
	case tea.KeyMsg:
		if m.inputMode {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "o":
			m.inputMode = true
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.exercises) {
				ex := m.exercises[idx]
				m.choice = &ex
			}
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.inputMode = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			m.inputMode = false
			m.input.Blur()
			return m, nil
		}
		blocks, err := textsource.LoadFile(path)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.exercises = blocks
		m.table = buildTable(blocks)
		m.errMsg = ""
		m.inputMode = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.inputMode {
		rows := []string{titleStyle.Render("Load exercise file"), "", m.input.View()}
		if m.errMsg != "" {
			rows = append(rows, "", errorStyle.Render(m.errMsg))
		}
		modal := modalStyle.Render(strings.Join(rows, "\n"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	parts := []string{
		titleStyle.Render("Choose an exercise"),
		"",
		m.table.View(),
		"",
		footerStyle.Render("enter select  o open file  q quit"),
	}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	content := strings.Join(parts, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
