package tui

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"

	"github.com/mcdonaldj/zipcmp/internal/compare"
	"github.com/mcdonaldj/zipcmp/internal/config"
	"github.com/mcdonaldj/zipcmp/internal/mocks"
	"github.com/mcdonaldj/zipcmp/internal/ports"
)

func newTestModel(pathA, pathB string) (*Model, *mocks.MockArchiver) {
	archiver := mocks.NewMockArchiver()
	return NewModel(compare.NewService(archiver, nil), pathA, pathB), archiver
}

func update(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(*Model), cmd
}

func TestNewModelFocus(t *testing.T) {
	tests := []struct {
		name  string
		pathA string
		pathB string
		want  Field
	}{
		{"no paths", "", "", FirstPathField},
		{"first path only", "a.zip", "", SecondPathField},
		{"both paths", "a.zip", "b.zip", CompareButton},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(tt.pathA, tt.pathB)
			if m.focus != tt.want {
				t.Errorf("focus = %v, expected %v", m.focus, tt.want)
			}
			if m.inputs[0].Value() != tt.pathA {
				t.Errorf("first input = %q, expected %q", m.inputs[0].Value(), tt.pathA)
			}
			if m.inputs[1].Value() != tt.pathB {
				t.Errorf("second input = %q, expected %q", m.inputs[1].Value(), tt.pathB)
			}
		})
	}
}

func TestModelFocusCycle(t *testing.T) {
	m, _ := newTestModel("", "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != SecondPathField {
		t.Errorf("focus = %v, expected SecondPathField", m.focus)
	}
	if m.inputs[0].Focused() || !m.inputs[1].Focused() {
		t.Error("only the second input should be focused")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != CompareButton {
		t.Errorf("focus = %v, expected CompareButton", m.focus)
	}

	// Wraps around
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != FirstPathField {
		t.Errorf("focus = %v, expected FirstPathField", m.focus)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != CompareButton {
		t.Errorf("focus = %v, expected CompareButton after shift+tab", m.focus)
	}
}

func TestModelEnterAdvancesFocus(t *testing.T) {
	m, _ := newTestModel("", "")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on a path field should not start a comparison")
	}
	if m.focus != SecondPathField {
		t.Errorf("focus = %v, expected SecondPathField", m.focus)
	}
}

func TestModelTyping(t *testing.T) {
	m, _ := newTestModel("", "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.zip")})
	if m.inputs[0].Value() != "a.zip" {
		t.Errorf("first input = %q, expected %q", m.inputs[0].Value(), "a.zip")
	}
	if m.inputs[1].Value() != "" {
		t.Errorf("second input = %q, expected empty", m.inputs[1].Value())
	}
}

func TestModelMissingInput(t *testing.T) {
	m, archiver := newTestModel("a.zip", "")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil {
		t.Error("no comparison should start without both paths")
	}
	if m.comparing {
		t.Error("trigger should stay enabled")
	}
	if !m.statusWarn || !strings.Contains(m.statusMsg, "Please select both ZIP files") {
		t.Errorf("status = %q (warn=%v), expected missing input warning", m.statusMsg, m.statusWarn)
	}
	if len(archiver.DigestCalls) != 0 {
		t.Errorf("archives read = %v, expected none", archiver.DigestCalls)
	}
}

func TestModelWhitespacePathIsMissing(t *testing.T) {
	m, _ := newTestModel("   ", "b.zip")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil || !m.statusWarn {
		t.Error("a blank path should be reported as missing")
	}
}

func TestModelCompareIdentical(t *testing.T) {
	m, archiver := newTestModel("a.zip", "b.zip")
	archiver.AddArchive("a.zip", "x.txt", "hello", "y.txt", "world")
	archiver.AddArchive("b.zip", "y.txt", "world", "x.txt", "hello")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a comparison command")
	}
	if !m.comparing {
		t.Error("trigger should be disabled while comparing")
	}
	if !strings.Contains(m.View(), "Comparing...") {
		t.Error("view should show the comparison in progress")
	}

	// A second trigger is ignored while running
	m, again := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if again != nil {
		t.Error("trigger should be ignored while comparing")
	}

	m, _ = update(t, m, cmd())
	if m.comparing {
		t.Error("trigger should be re-enabled after the comparison")
	}
	if m.report == nil || m.report.Kind != compare.Identical {
		t.Fatalf("report = %+v, expected identical", m.report)
	}

	view := m.View()
	if !strings.Contains(view, "ZIP files have identical contents!") {
		t.Errorf("view missing success line:\n%s", view)
	}
	if !strings.Contains(view, "File 1: a.zip") || !strings.Contains(view, "File 2: b.zip") {
		t.Errorf("view missing archive paths:\n%s", view)
	}
}

func TestModelCompareError(t *testing.T) {
	m, archiver := newTestModel("a.zip", "b.zip")
	archiver.AddArchive("a.zip", "x.txt", "hello")
	archiver.Errors["b.zip"] = &ports.ArchiveError{Path: "b.zip", Op: ports.OpOpen, Err: zip.ErrFormat}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected a comparison command")
	}
	m, _ = update(t, m, cmd())

	if m.comparing {
		t.Error("trigger should be re-enabled after an error")
	}
	if m.report != nil {
		t.Error("no report should be shown after an error")
	}
	if !m.statusErr {
		t.Error("expected error status")
	}
	if !strings.Contains(m.statusMsg, "could not read ZIP file b.zip") {
		t.Errorf("status = %q, expected archive error", m.statusMsg)
	}
}

func TestModelErrorClearsPreviousReport(t *testing.T) {
	m, archiver := newTestModel("a.zip", "b.zip")
	archiver.AddArchive("a.zip", "x.txt", "hello")
	archiver.AddArchive("b.zip", "x.txt", "hello")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = update(t, m, cmd())
	if m.report == nil {
		t.Fatal("expected a report from the first comparison")
	}

	delete(archiver.Contents, "b.zip")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("trigger should be usable again")
	}
	m, _ = update(t, m, cmd())

	if m.report != nil {
		t.Error("failed comparison should clear the previous report")
	}
	if !strings.Contains(m.View(), "No comparison yet") {
		t.Error("results pane should be empty")
	}
}

func TestRenderReport(t *testing.T) {
	tests := []struct {
		name   string
		report *compare.Report
		want   []string
	}{
		{
			name: "count mismatch",
			report: &compare.Report{
				ArchiveA: "a.zip", ArchiveB: "b.zip",
				Kind: compare.CountMismatch, CountA: 2, CountB: 3,
			},
			want: []string{"Different number of files", "File 1 contains 2 files", "File 2 contains 3 files"},
		},
		{
			name: "differences",
			report: &compare.Report{
				ArchiveA: "a.zip", ArchiveB: "b.zip",
				Kind: compare.Different, CountA: 2, CountB: 2,
				Findings: []compare.Finding{
					{Kind: compare.ContentMismatch, Entry: "x.txt"},
					{Kind: compare.MissingInOther, Entry: "y.txt"},
				},
			},
			want: []string{"Differences found:", "  - File x.txt has different content", "  - File y.txt not found in second ZIP"},
		},
		{
			name:   "identical",
			report: &compare.Report{ArchiveA: "a.zip", ArchiveB: "b.zip", Kind: compare.Identical},
			want:   []string{"ZIP File Comparison Report", "ZIP files have identical contents!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderReport(tt.report)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestModelWindowResize(t *testing.T) {
	m, _ := newTestModel("", "")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})

	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, expected 100x50", m.width, m.height)
	}
	if m.results.Width != 96 {
		t.Errorf("results width = %d, expected 96", m.results.Width)
	}
	if m.results.Height != 36 {
		t.Errorf("results height = %d, expected 36", m.results.Height)
	}

	// Tiny terminals keep a usable pane
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 10})
	if m.results.Height != 5 {
		t.Errorf("results height = %d, expected 5", m.results.Height)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel("", "")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.quitting {
		t.Error("quitting should be set")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestWithTeatest(t *testing.T) {
	m, archiver := newTestModel("", "")
	archiver.AddArchive("a.zip", "x.txt", "hello", "y.txt", "world")
	archiver.AddArchive("b.zip", "x.txt", "HELLO", "y.txt", "world")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))

	tm.Type("a.zip")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("b.zip")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlR})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("File x.txt has different content"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final := tm.FinalModel(t).(*Model)
	if final.report == nil || final.report.Kind != compare.Different {
		t.Errorf("final report = %+v, expected different", final.report)
	}
}

// browseFixture creates a directory holding a.zip and notes.txt.
func browseFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.zip", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

// openPicker presses ctrl+o and delivers the directory listing.
func openPicker(t *testing.T, m *Model) *Model {
	t.Helper()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.browsing {
		t.Fatal("ctrl+o should open the file picker")
	}
	if cmd == nil {
		t.Fatal("expected a directory read command")
	}
	m, _ = update(t, m, cmd())
	return m
}

func TestModelBrowseSelectsZip(t *testing.T) {
	dir := browseFixture(t)
	m, _ := newTestModel("", "")
	m.browseDir = dir

	m = openPicker(t, m)
	if m.picker.CurrentDirectory != dir {
		t.Errorf("picker dir = %q, expected %q", m.picker.CurrentDirectory, dir)
	}
	if !strings.Contains(m.View(), "a.zip") {
		t.Errorf("picker view should list a.zip:\n%s", m.View())
	}

	// Entries are sorted by name, so a.zip is under the cursor
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.browsing {
		t.Error("picker should close after selecting a file")
	}
	want := filepath.Join(dir, "a.zip")
	if m.inputs[0].Value() != want {
		t.Errorf("first input = %q, expected %q", m.inputs[0].Value(), want)
	}
	if m.focus != SecondPathField {
		t.Errorf("focus = %v, expected SecondPathField", m.focus)
	}
}

func TestModelBrowseRejectsNonZip(t *testing.T) {
	dir := browseFixture(t)
	m, _ := newTestModel("", "")
	m.browseDir = dir

	m = openPicker(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.browsing {
		t.Error("picker should stay open after choosing a non-zip file")
	}
	if m.inputs[0].Value() != "" {
		t.Errorf("first input = %q, expected empty", m.inputs[0].Value())
	}
	if !m.statusWarn || !strings.Contains(m.statusMsg, "notes.txt is not a ZIP file") {
		t.Errorf("status = %q, expected non-zip warning", m.statusMsg)
	}
}

func TestModelBrowseStartsNextToCurrentPath(t *testing.T) {
	dir := browseFixture(t)
	m, _ := newTestModel(filepath.Join(dir, "old.zip"), "")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}) // back to the first field
	if m.focus != FirstPathField {
		t.Fatalf("focus = %v, expected FirstPathField", m.focus)
	}

	m = openPicker(t, m)
	if m.picker.CurrentDirectory != dir {
		t.Errorf("picker dir = %q, expected %q", m.picker.CurrentDirectory, dir)
	}
}

func TestModelBrowseCancel(t *testing.T) {
	dir := browseFixture(t)
	m, _ := newTestModel("", "")
	m.browseDir = dir

	m = openPicker(t, m)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	if m.browsing {
		t.Error("ctrl+o should close the picker")
	}
	if cmd != nil {
		t.Error("cancelling should not quit")
	}
	if m.inputs[0].Value() != "" {
		t.Errorf("first input = %q, expected unchanged", m.inputs[0].Value())
	}
}

func TestModelBrowseIgnoredOnButton(t *testing.T) {
	m, _ := newTestModel("a.zip", "b.zip")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.browsing || cmd != nil {
		t.Error("browse should do nothing while the compare button is focused")
	}
}

func TestApplyColorMode(t *testing.T) {
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	applyColorMode(config.ColorAlways)
	if out := detailStyle.Render("ok"); !strings.Contains(out, "\x1b[") {
		t.Errorf("always: expected ANSI sequences, got %q", out)
	}

	applyColorMode(config.ColorNever)
	if out := detailStyle.Render("ok"); out != "ok" {
		t.Errorf("never: expected plain text, got %q", out)
	}

	// Auto keeps whatever was detected
	lipgloss.SetColorProfile(termenv.ANSI256)
	applyColorMode(config.ColorAuto)
	if lipgloss.ColorProfile() != termenv.ANSI256 {
		t.Error("auto should not change the color profile")
	}
}
