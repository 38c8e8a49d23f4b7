package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mcdonaldj/zipcmp/internal/compare"
	"github.com/mcdonaldj/zipcmp/internal/config"
)

// Comparer runs a comparison of two archives.
type Comparer interface {
	Run(pathA, pathB string) (*compare.Report, error)
}

// Field identifies the focused control.
type Field int

const (
	FirstPathField Field = iota
	SecondPathField
	CompareButton
)

const fieldCount = 3

// Model is the main TUI model
type Model struct {
	comparer Comparer
	width    int
	height   int
	quitting bool

	inputs [2]textinput.Model
	focus  Field

	// Results pane
	results   viewport.Model
	report    *compare.Report
	comparing bool // compare trigger is disabled while true

	// File picker for the focused path field
	picker    filepicker.Model
	browsing  bool
	browseDir string // start directory when the field has no usable path

	// Status message
	statusMsg  string
	statusErr  bool
	statusWarn bool
}

// Key bindings
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Enter   key.Binding
	Compare key.Binding
	Scroll  key.Binding
	Browse  key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Compare: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "compare"),
	),
	Scroll: key.NewBinding(
		key.WithKeys("up", "down", "pgup", "pgdown"),
		key.WithHelp("↑/↓", "scroll"),
	),
	Browse: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "browse"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("ctrl+o", "q"),
		key.WithHelp("ctrl+o", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// NewModel creates a new TUI model with the given paths filled in.
func NewModel(comparer Comparer, pathA, pathB string) *Model {
	m := &Model{
		comparer:  comparer,
		results:   viewport.New(76, 10),
		browseDir: ".",
	}

	for i, p := range []string{pathA, pathB} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "path/to/archive.zip"
		ti.CharLimit = 4096
		ti.Width = 50
		ti.SetValue(p)
		m.inputs[i] = ti
	}

	switch {
	case pathA == "":
		m.focus = FirstPathField
	case pathB == "":
		m.focus = SecondPathField
	default:
		m.focus = CompareButton
	}
	m.applyFocus()

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

type compareMsg struct {
	report *compare.Report
	err    error
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.browsing {
			m.picker, _ = m.picker.Update(m.pickerSize())
		}
		return m, nil

	case compareMsg:
		m.handleCompareMsg(msg)
		return m, nil
	}

	if m.browsing {
		return m.updateBrowse(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Browse):
			return m, m.startBrowse()

		case key.Matches(msg, keys.Next):
			m.moveFocus(1)
			return m, nil

		case key.Matches(msg, keys.Prev):
			m.moveFocus(-1)
			return m, nil

		case key.Matches(msg, keys.Compare):
			return m, m.startCompare()

		case key.Matches(msg, keys.Enter):
			if m.focus == CompareButton {
				return m, m.startCompare()
			}
			m.moveFocus(1)
			return m, nil

		case key.Matches(msg, keys.Scroll):
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

		// Anything else is typing into the focused path
		if m.focus != CompareButton {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.focus != CompareButton {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// startBrowse opens a file picker for the focused path field.
func (m *Model) startBrowse() tea.Cmd {
	if m.focus == CompareButton {
		return nil
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".zip"}
	fp.CurrentDirectory = m.pickerDir()
	fp.ShowPermissions = false
	fp.Cursor = "▸"
	fp.Styles.Selected = fp.Styles.Selected.Foreground(detailColor)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(detailColor)

	// Size before the first directory read so entries are visible
	fp, _ = fp.Update(m.pickerSize())

	m.picker = fp
	m.browsing = true
	m.setStatus("", false, false)
	return m.picker.Init()
}

// pickerDir starts the picker next to the field's current path when that
// directory exists.
func (m *Model) pickerDir() string {
	value := strings.TrimSpace(m.inputs[m.focus].Value())
	if value != "" {
		dir := filepath.Dir(config.ExpandPath(value))
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return m.browseDir
}

func (m *Model) pickerSize() tea.WindowSizeMsg {
	h := m.height - 4 // title and help lines
	if m.height == 0 {
		h = 20
	}
	if h < 10 {
		h = 10
	}
	return tea.WindowSizeMsg{Width: m.width, Height: h}
}

func (m *Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case kmsg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(kmsg, keys.Cancel):
			m.browsing = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.inputs[m.focus].SetValue(path)
		m.inputs[m.focus].CursorEnd()
		m.browsing = false
		m.moveFocus(1)
		return m, nil
	}

	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.setStatus(filepath.Base(path)+" is not a ZIP file", false, true)
		return m, cmd
	}

	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	m.focus = Field((int(m.focus) + delta + fieldCount) % fieldCount)
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		if Field(i) == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) resize() {
	inner := m.width - 4 // appStyle horizontal padding
	if inner < 20 {
		inner = 20
	}
	m.results.Width = inner

	// Title, two inputs, button, label, status and help take about 14 lines
	h := m.height - 14
	if h < 5 {
		h = 5
	}
	m.results.Height = h

	inputWidth := inner - len("Second ZIP File: ") - 1
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}

	if m.report != nil {
		m.results.SetContent(renderReport(m.report))
	}
}

// startCompare validates the paths and runs the comparison in the background.
func (m *Model) startCompare() tea.Cmd {
	if m.comparing {
		return nil
	}

	pathA := strings.TrimSpace(m.inputs[0].Value())
	pathB := strings.TrimSpace(m.inputs[1].Value())
	if pathA == "" || pathB == "" {
		m.setStatus("Please select both ZIP files", false, true)
		return nil
	}

	m.comparing = true
	m.setStatus("Comparing...", false, false)

	comparer := m.comparer
	return func() tea.Msg {
		report, err := comparer.Run(pathA, pathB)
		return compareMsg{report: report, err: err}
	}
}

func (m *Model) handleCompareMsg(msg compareMsg) {
	// Re-enable the trigger whatever the outcome
	m.comparing = false

	if msg.err != nil {
		m.report = nil
		m.results.SetContent("")
		if errors.Is(msg.err, compare.ErrMissingInput) {
			m.setStatus("Please select both ZIP files", false, true)
		} else {
			m.setStatus(fmt.Sprintf("Error: %v", msg.err), true, false)
		}
		return
	}

	m.report = msg.report
	m.results.SetContent(renderReport(msg.report))
	m.results.GotoTop()
	m.setStatus("", false, false)
}

func (m *Model) setStatus(msg string, isErr, isWarn bool) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusWarn = isWarn
}

// renderReport formats a report for the results pane.
func renderReport(r *compare.Report) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("🔍 ZIP File Comparison Report"))
	b.WriteString("\n")
	b.WriteString(fileStyle.Render("File 1: " + r.ArchiveA))
	b.WriteString("\n")
	b.WriteString(fileStyle.Render("File 2: " + r.ArchiveB))
	b.WriteString("\n\n")

	switch r.Kind {
	case compare.CountMismatch:
		b.WriteString(errorStyle.Render("✗ Different number of files"))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("File 1 contains %d files", r.CountA)))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("File 2 contains %d files", r.CountB)))
		b.WriteString("\n")
	case compare.Identical:
		b.WriteString(successStyle.Render("✓ ZIP files have identical contents!"))
		b.WriteString("\n")
	default:
		b.WriteString(errorStyle.Render("✗ Differences found:"))
		b.WriteString("\n")
		for _, f := range r.Findings {
			b.WriteString(detailStyle.Render("  - " + f.Message()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render(" 📦 ZIP File Checksum Comparator "))
	b.WriteString("\n\n")

	if m.browsing {
		return m.browseView(&b)
	}

	// Path inputs
	b.WriteString(labelStyle.Render("First ZIP File:  "))
	b.WriteString(" ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Second ZIP File: "))
	b.WriteString(" ")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	// Compare button
	switch {
	case m.comparing:
		b.WriteString(buttonDisabledStyle.Render("Comparing..."))
	case m.focus == CompareButton:
		b.WriteString(buttonFocusedStyle.Render("▸ Compare ZIP Contents"))
	default:
		b.WriteString(buttonStyle.Render("Compare ZIP Contents"))
	}
	b.WriteString("\n\n")

	// Results
	b.WriteString(labelStyle.Render("Comparison Results:"))
	b.WriteString("\n")
	if m.report == nil {
		b.WriteString(dimStyle.Render("  No comparison yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.results.View())
		b.WriteString("\n")
	}

	// Status
	b.WriteString("\n")
	if m.statusMsg != "" {
		switch {
		case m.statusErr:
			b.WriteString(errorStyle.Render(m.statusMsg))
		case m.statusWarn:
			b.WriteString(warnStyle.Render("⚠ " + m.statusMsg))
		default:
			b.WriteString(dimStyle.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	// Help
	help := "[tab] next field  [ctrl+o] browse  [enter] compare  [ctrl+r] compare  [↑/↓] scroll  [esc] quit"
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

func (m *Model) browseView(b *strings.Builder) string {
	label := "Select first ZIP file"
	if m.focus == SecondPathField {
		label = "Select second ZIP file"
	}
	b.WriteString(labelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")

	if m.statusMsg != "" && m.statusWarn {
		b.WriteString(warnStyle.Render("⚠ " + m.statusMsg))
	}
	b.WriteString("\n")

	help := "[enter] open/select  [esc] parent dir  [ctrl+o] cancel  [ctrl+c] quit"
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

// applyColorMode maps the configured color mode onto the lipgloss renderer.
// Auto leaves terminal detection in place.
func applyColorMode(mode string) {
	switch mode {
	case config.ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// Run starts the TUI with the given paths filled in.
func Run(cfg *config.Config, pathA, pathB string) error {
	applyColorMode(cfg.Color)
	m := NewModel(compare.NewDefaultService(cfg, nil), pathA, pathB)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
