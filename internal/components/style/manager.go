package style

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Manager handles styling and theming for the list view
type Manager struct {
	theme *Theme
	cache map[string]lipgloss.Style
	mu    sync.Mutex
}

// Theme defines color schemes and styling
type Theme struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Colors      *ColorScheme `yaml:"colors"`
}

// ColorScheme defines the color palette
type ColorScheme struct {
	Foreground lipgloss.Color `yaml:"foreground"`
	Muted      lipgloss.Color `yaml:"muted"`

	// Rows inside the render window but outside the viewport
	Overscan lipgloss.Color `yaml:"overscan"`

	// Jump target highlight
	Selection *SelectionColors `yaml:"selection"`

	UI *UIColors `yaml:"ui"`
}

// SelectionColors for highlighted items
type SelectionColors struct {
	Background lipgloss.Color `yaml:"background"`
	Foreground lipgloss.Color `yaml:"foreground"`
}

// UIColors for interface elements
type UIColors struct {
	Border  lipgloss.Color `yaml:"border"`
	Header  lipgloss.Color `yaml:"header"`
	Gutter  lipgloss.Color `yaml:"gutter"`
	Info    lipgloss.Color `yaml:"info"`
	Warning lipgloss.Color `yaml:"warning"`
	Error   lipgloss.Color `yaml:"error"`
}

// NewManager creates a new style manager with the default theme
func NewManager() *Manager {
	return &Manager{
		theme: getDefaultTheme(),
		cache: make(map[string]lipgloss.Style),
	}
}

// ThemeByName returns a built-in theme. Unknown names yield the default theme and false.
func ThemeByName(name string) (*Theme, bool) {
	switch name {
	case "", "default":
		return getDefaultTheme(), true
	case "light":
		return GetLightTheme(), true
	case "high-contrast":
		return GetHighContrastTheme(), true
	}
	return getDefaultTheme(), false
}

// SetTheme sets the current theme
func (m *Manager) SetTheme(theme *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.theme = theme
	m.cache = make(map[string]lipgloss.Style)
}

// GetTheme returns the current theme
func (m *Manager) GetTheme() *Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

func (m *Manager) cached(key string, build func(*Theme) lipgloss.Style) lipgloss.Style {
	m.mu.Lock()
	defer m.mu.Unlock()

	if style, ok := m.cache[key]; ok {
		return style
	}
	style := build(m.theme)
	m.cache[key] = style
	return style
}

// Row returns the style for a list row
func (m *Manager) Row(visible, selected bool, width int) lipgloss.Style {
	key := fmt.Sprintf("row_%t_%t_%d", visible, selected, width)
	return m.cached(key, func(t *Theme) lipgloss.Style {
		style := lipgloss.NewStyle().Width(width).MaxWidth(width)
		switch {
		case selected:
			return style.
				Background(t.Colors.Selection.Background).
				Foreground(t.Colors.Selection.Foreground)
		case !visible:
			return style.Foreground(t.Colors.Overscan).Faint(true)
		default:
			return style.Foreground(t.Colors.Foreground)
		}
	})
}

// Gutter returns the style for the index column
func (m *Manager) Gutter(width int) lipgloss.Style {
	return m.cached(fmt.Sprintf("gutter_%d", width), func(t *Theme) lipgloss.Style {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Right).
			PaddingRight(1).
			Foreground(t.Colors.UI.Gutter)
	})
}

// Header returns the title bar style
func (m *Manager) Header(width int) lipgloss.Style {
	return m.cached(fmt.Sprintf("header_%d", width), func(t *Theme) lipgloss.Style {
		return lipgloss.NewStyle().
			Width(width).
			Bold(true).
			Foreground(t.Colors.UI.Header).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Colors.UI.Border)
	})
}

// StatusBar returns the status line style
func (m *Manager) StatusBar(width int) lipgloss.Style {
	return m.cached(fmt.Sprintf("status_%d", width), func(t *Theme) lipgloss.Style {
		return lipgloss.NewStyle().
			Width(width).
			MaxHeight(1).
			Foreground(t.Colors.Muted)
	})
}

// Info returns the style for informational messages
func (m *Manager) Info() lipgloss.Style {
	return m.cached("info", func(t *Theme) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(t.Colors.UI.Info)
	})
}

// Error returns the style for error messages
func (m *Manager) Error() lipgloss.Style {
	return m.cached("error", func(t *Theme) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(t.Colors.UI.Error).Bold(true)
	})
}

// Warning returns the style for warnings, such as a slow frame rate
func (m *Manager) Warning() lipgloss.Style {
	return m.cached("warning", func(t *Theme) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(t.Colors.UI.Warning)
	})
}

// ClearCache clears the style cache
func (m *Manager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]lipgloss.Style)
}

// getDefaultTheme returns the default dark theme
func getDefaultTheme() *Theme {
	return &Theme{
		Name:        "default",
		Description: "Default dark theme",
		Colors: &ColorScheme{
			Foreground: lipgloss.Color("#d4d4d4"),
			Muted:      lipgloss.Color("#808080"),
			Overscan:   lipgloss.Color("#5a5a5a"),
			Selection: &SelectionColors{
				Background: lipgloss.Color("#264f78"),
				Foreground: lipgloss.Color("#ffffff"),
			},
			UI: &UIColors{
				Border:  lipgloss.Color("#3c3c3c"),
				Header:  lipgloss.Color("#cccccc"),
				Gutter:  lipgloss.Color("#6a9955"),
				Info:    lipgloss.Color("#569cd6"),
				Warning: lipgloss.Color("#dcdcaa"),
				Error:   lipgloss.Color("#f44747"),
			},
		},
	}
}

// GetLightTheme returns a light theme
func GetLightTheme() *Theme {
	return &Theme{
		Name:        "light",
		Description: "Light theme",
		Colors: &ColorScheme{
			Foreground: lipgloss.Color("#000000"),
			Muted:      lipgloss.Color("#605e5c"),
			Overscan:   lipgloss.Color("#a19f9d"),
			Selection: &SelectionColors{
				Background: lipgloss.Color("#0078d4"),
				Foreground: lipgloss.Color("#ffffff"),
			},
			UI: &UIColors{
				Border:  lipgloss.Color("#d1d1d1"),
				Header:  lipgloss.Color("#323130"),
				Gutter:  lipgloss.Color("#107c10"),
				Info:    lipgloss.Color("#0078d4"),
				Warning: lipgloss.Color("#ffb900"),
				Error:   lipgloss.Color("#d13438"),
			},
		},
	}
}

// GetHighContrastTheme returns a high contrast theme for accessibility
func GetHighContrastTheme() *Theme {
	return &Theme{
		Name:        "high-contrast",
		Description: "High contrast theme for accessibility",
		Colors: &ColorScheme{
			Foreground: lipgloss.Color("#ffffff"),
			Muted:      lipgloss.Color("#c0c0c0"),
			Overscan:   lipgloss.Color("#808080"),
			Selection: &SelectionColors{
				Background: lipgloss.Color("#ffffff"),
				Foreground: lipgloss.Color("#000000"),
			},
			UI: &UIColors{
				Border:  lipgloss.Color("#ffffff"),
				Header:  lipgloss.Color("#ffffff"),
				Gutter:  lipgloss.Color("#00ff00"),
				Info:    lipgloss.Color("#00ffff"),
				Warning: lipgloss.Color("#ffff00"),
				Error:   lipgloss.Color("#ff0000"),
			},
		},
	}
}
