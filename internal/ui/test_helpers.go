package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/HamStudy/vscroll/internal/items"
)

// testEpoch is the fixed clock used by test apps
var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// createTestApp creates a sized app over n generated rows with a fixed clock
func createTestApp(t *testing.T, n int) *App {
	t.Helper()
	return createTestAppWithOptions(t, items.Generate(n), DefaultOptions())
}

func createTestAppWithOptions(t *testing.T, rows []items.Item, opts Options) *App {
	t.Helper()

	app, err := NewApp(rows, opts)
	require.NoError(t, err)
	app.now = func() time.Time { return testEpoch }

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

// keyMsg builds a key message for a binding string such as "j" or "ctrl+d"
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key in order
func press(app *App, keys ...string) {
	for _, k := range keys {
		app.Update(keyMsg(k))
	}
}

// frame delivers a frame tick at testEpoch+d
func frame(app *App, d time.Duration) {
	app.Update(frameMsg(testEpoch.Add(d)))
}
