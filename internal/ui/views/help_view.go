package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpSection is a titled group of bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpView renders the key reference as a bordered box meant to be drawn
// over the list
type HelpView struct {
	width    int
	height   int
	sections []HelpSection
}

// NewHelpView creates a new help view
func NewHelpView(sections []HelpSection) *HelpView {
	return &HelpView{sections: sections}
}

// Init initializes the view
func (v *HelpView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *HelpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true).
			Width(10)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
)

// View renders the help box
func (v *HelpView) View() string {
	blocks := make([]string, 0, len(v.sections))
	for _, section := range v.sections {
		if block := renderSection(section); block != "" {
			blocks = append(blocks, block)
		}
	}

	body := v.layout(blocks)
	inner := max(lipgloss.Width(body), 40)

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("vscroll - Help"))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(helpDescStyle.Width(inner).Render("rows: the lines on screen. render: those rows plus the overscan kept ready on each side."))
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("Press ? or esc to close help"))

	return helpBoxStyle.Render(b.String())
}

// layout splits the sections into two columns of roughly equal height, or
// stacks them when two columns would not fit the terminal
func (v *HelpView) layout(blocks []string) string {
	if len(blocks) < 2 {
		return strings.Join(blocks, "\n\n")
	}

	total := 0
	for _, block := range blocks {
		total += lipgloss.Height(block)
	}
	split, acc := 0, 0
	for split < len(blocks)-1 && acc < total/2 {
		acc += lipgloss.Height(blocks[split])
		split++
	}

	left := strings.Join(blocks[:split], "\n\n")
	right := strings.Join(blocks[split:], "\n\n")
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	frame := helpBoxStyle.GetHorizontalFrameSize()
	if v.width > 0 && lipgloss.Width(columns)+frame > v.width {
		return strings.Join(blocks, "\n\n")
	}
	return columns
}

func renderSection(section HelpSection) string {
	var lines []string
	for _, b := range section.Bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		lines = append(lines, helpKeyStyle.Render(h.Key)+helpDescStyle.Render(h.Desc))
	}
	if len(lines) == 0 {
		return ""
	}
	return helpSectionStyle.Render(section.Title) + "\n" + strings.Join(lines, "\n")
}
