package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func testSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Scrolling",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "down")),
				key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "up")),
				key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
			},
		},
		{
			Title: "General",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
				key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled()),
			},
		},
		{
			Title: "Empty",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "off"), key.WithDisabled()),
			},
		},
	}
}

func TestHelpViewRendersSections(t *testing.T) {
	v := NewHelpView(testSections())
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := v.View()

	for _, want := range []string{"vscroll - Help", "Scrolling", "down", "General", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected help view to contain %q", want)
		}
	}
	if strings.Contains(view, "hidden") {
		t.Error("Expected disabled bindings to be omitted")
	}
	if strings.Contains(view, "Empty") {
		t.Error("Expected sections without enabled bindings to be omitted")
	}
}

func TestHelpViewColumns(t *testing.T) {
	wide := NewHelpView(testSections())
	wide.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	narrow := NewHelpView(testSections())
	narrow.Update(tea.WindowSizeMsg{Width: 30, Height: 40})

	wideView, narrowView := wide.View(), narrow.View()

	// Side by side columns put both section titles on one line
	if !lineContainsAll(wideView, "Scrolling", "General") {
		t.Error("Expected sections side by side on a wide terminal")
	}
	if lineContainsAll(narrowView, "Scrolling", "General") {
		t.Error("Expected sections stacked on a narrow terminal")
	}
	if lipgloss.Height(narrowView) <= lipgloss.Height(wideView) {
		t.Errorf("Expected stacked layout to be taller: %d <= %d",
			lipgloss.Height(narrowView), lipgloss.Height(wideView))
	}
}

func lineContainsAll(s string, subs ...string) bool {
	for _, line := range strings.Split(s, "\n") {
		all := true
		for _, sub := range subs {
			if !strings.Contains(line, sub) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
