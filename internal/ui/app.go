package ui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"go.dalton.dog/bubbleup"

	"github.com/HamStudy/vscroll/internal/components/performance"
	"github.com/HamStudy/vscroll/internal/components/style"
	"github.com/HamStudy/vscroll/internal/items"
	"github.com/HamStudy/vscroll/internal/log"
	"github.com/HamStudy/vscroll/internal/ui/views"
)

// Rows taken by the header (title and border), status line and help line
const chromeRows = 4

// Options configures the list view
type Options struct {
	Title                string
	ItemHeight           int
	Overscan             int
	FrameInterval        time.Duration
	SmoothScrollDuration time.Duration
	Easing               string
	Theme                string
	ShowOverscan         bool
	ShowStats            bool
}

// DefaultOptions returns the options used when no config is present
func DefaultOptions() Options {
	return Options{
		Title:                "vscroll",
		ItemHeight:           1,
		Overscan:             performance.DefaultOverscan,
		FrameInterval:        performance.DefaultFrameInterval,
		SmoothScrollDuration: 180 * time.Millisecond,
		Easing:               EasingOutCubic,
		Theme:                "default",
		ShowStats:            true,
	}
}

// frameMsg is one tick of the frame clock
type frameMsg time.Time

// App is the list view model. It owns the scroll position and feeds it to
// the viewport manager at most once per frame.
type App struct {
	opts   Options
	keys   KeyMap
	styles *style.Manager
	help   help.Model
	input  textinput.Model

	helpView   *views.HelpView
	alert      bubbleup.AlertModel
	alertWidth int

	items   []items.Item
	list    *performance.ViewportManager[items.Item]
	gate    performance.FrameGate
	scroll  *ScrollAnimation
	monitor *performance.PerformanceMonitor
	fps     *performance.FPSCounter
	now     func() time.Time

	// offset is the host scroll position; the manager sees it on the next frame
	offset  float64
	ticking bool

	// UI state
	mode      ScreenModeType
	width     int
	height    int
	ready     bool
	highlight int
	// last jump result, cleared by manual scrolling
	status    string
	statusErr bool
}

// NewApp creates a new application instance
func NewApp(rows []items.Item, opts Options) (*App, error) {
	if opts.ItemHeight <= 0 {
		return nil, fmt.Errorf("item height must be positive, got %d", opts.ItemHeight)
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = performance.DefaultFrameInterval
	}

	cfg := performance.DefaultConfig(float64(opts.ItemHeight), 1, len(rows))
	cfg.Overscan = opts.Overscan

	list, err := performance.NewViewportManager[items.Item](cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	styles := style.NewManager()
	theme, ok := style.ThemeByName(opts.Theme)
	if !ok {
		log.Printf("unknown theme %q, using default", opts.Theme)
	}
	styles.SetTheme(theme)

	easing, ok := EasingByName(opts.Easing)
	if !ok {
		log.Printf("unknown easing %q, using %s", opts.Easing, EasingOutCubic)
	}

	input := textinput.New()
	input.CharLimit = 256

	a := &App{
		opts:      opts,
		keys:      DefaultKeyMap(),
		styles:    styles,
		help:      help.New(),
		input:     input,
		items:     rows,
		list:      list,
		scroll:    NewScrollAnimation(opts.SmoothScrollDuration, easing),
		monitor:   performance.NewPerformanceMonitor(),
		fps:       performance.NewFPSCounter(time.Second),
		now:       time.Now,
		highlight: -1,
		alert:     newAlertModel(theme, 0),
	}

	a.helpView = views.NewHelpView([]views.HelpSection{
		{Title: "Scrolling", Bindings: []key.Binding{a.keys.Up, a.keys.Down, a.keys.HalfPageUp, a.keys.HalfPageDown, a.keys.PageUp, a.keys.PageDown, a.keys.Top, a.keys.Bottom}},
		{Title: "Jumping", Bindings: []key.Binding{a.keys.JumpItem, a.keys.JumpIndex}},
		{Title: "General", Bindings: []key.Binding{a.keys.Overscan, a.keys.Stats, a.keys.Help, a.keys.Quit}},
	})

	list.SetItems(rows)
	list.SetEquality(items.Matches)
	list.SetScroller(a)
	list.SetOnWindowChange(func(w performance.Window) {
		log.Printf("window %s offset=%.1f", w, list.ScrollOffset())
	})

	return a, nil
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.alert.Init()
}

// ScrollTo implements performance.Scroller. It moves the host scroll
// position; the window catches up on the next frame.
func (a *App) ScrollTo(offset float64, behavior performance.Behavior) {
	offset = a.clampOffset(offset)

	if behavior == performance.BehaviorSmooth {
		a.scroll.Start(a.offset, offset, a.now())
		if a.scroll.Active() {
			return
		}
	} else {
		a.scroll.Stop()
	}

	a.offset = offset
	a.gate.Submit(offset)
}

func (a *App) clampOffset(offset float64) float64 {
	if math.IsNaN(offset) || offset < 0 {
		return 0
	}
	return math.Min(offset, a.list.MaxScrollOffset())
}

// scrollBy scrolls relative to the current position, or to the
// destination of a running smooth scroll
func (a *App) scrollBy(delta float64) {
	a.status, a.statusErr = "", false

	base := a.offset
	if a.scroll.Active() {
		base = a.scroll.Target()
	}
	a.ScrollTo(base+delta, performance.BehaviorInstant)
}

// scheduleFrame arms the frame clock when there is work for the next frame
func (a *App) scheduleFrame() tea.Cmd {
	if a.ticking || (!a.gate.Pending() && !a.scroll.Active()) {
		return nil
	}
	a.ticking = true
	return tea.Tick(a.opts.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// onFrame advances the smooth scroll and applies at most one pending offset
func (a *App) onFrame(now time.Time) tea.Cmd {
	a.ticking = false
	a.fps.Frame(now)

	if a.scroll.Active() {
		offset, _ := a.scroll.Step(now)
		a.offset = offset
		a.gate.Submit(offset)
	}

	if offset, ok := a.gate.Take(); ok {
		a.applyScroll(offset)
	}

	return a.scheduleFrame()
}

func (a *App) applyScroll(offset float64) {
	done := a.monitor.StartTimer(performance.MetricWindowCompute)
	a.list.OnScroll(offset)
	done()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.updateAlerts(msg)}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		a.helpView.Update(msg)
		if msg.Width != a.alertWidth {
			// A rebuilt alert model drops the toast on screen
			a.alert = newAlertModel(a.styles.GetTheme(), msg.Width)
			a.alertWidth = msg.Width
		}

	case frameMsg:
		cmds = append(cmds, a.onFrame(time.Time(msg)))
		return a, tea.Batch(cmds...)

	case tea.MouseMsg:
		if a.mode == ModeList {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				a.scrollBy(-3)
			case tea.MouseButtonWheelDown:
				a.scrollBy(3)
			}
		}

	case tea.KeyMsg:
		if cmd, quit := a.handleKey(msg); quit {
			return a, tea.Quit
		} else if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, a.scheduleFrame())
	return a, tea.Batch(cmds...)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width
	a.input.Width = max(width-4, 1)

	if err := a.list.SetContainerHeight(float64(a.containerRows())); err != nil {
		log.Printf("resize: %v", err)
		return
	}

	// A taller viewport lowers the maximum offset; apply the clamp right away
	// so the first frame after a resize is already consistent.
	a.offset = a.clampOffset(a.offset)
	a.scroll.Stop()
	a.gate.Cancel()
	a.applyScroll(a.offset)
	a.ready = true
}

// containerRows is the number of terminal rows available to list items
func (a *App) containerRows() int {
	return max(a.height-chromeRows, 1)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.mode {
	case ModeHelp:
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" || key.Matches(msg, a.keys.Quit) {
			a.mode = ModeList
		}
		return nil, false

	case ModeJumpItem, ModeJumpIndex:
		switch msg.String() {
		case "esc", "ctrl+c":
			a.closePrompt()
			return nil, false
		case "enter":
			query := strings.TrimSpace(a.input.Value())
			mode := a.mode
			a.closePrompt()
			return a.jump(mode, query), false
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return cmd, false
	}

	itemHeight := float64(a.opts.ItemHeight)
	page := float64(a.containerRows())

	switch {
	case key.Matches(msg, a.keys.Quit):
		return nil, true
	case key.Matches(msg, a.keys.Down):
		a.scrollBy(itemHeight)
	case key.Matches(msg, a.keys.Up):
		a.scrollBy(-itemHeight)
	case key.Matches(msg, a.keys.HalfPageDown):
		a.scrollBy(math.Floor(page / 2))
	case key.Matches(msg, a.keys.HalfPageUp):
		a.scrollBy(-math.Floor(page / 2))
	case key.Matches(msg, a.keys.PageDown):
		a.scrollBy(page)
	case key.Matches(msg, a.keys.PageUp):
		a.scrollBy(-page)
	case key.Matches(msg, a.keys.Top):
		a.list.ScrollToIndex(0, performance.BehaviorSmooth)
	case key.Matches(msg, a.keys.Bottom):
		a.list.ScrollToIndex(len(a.items)-1, performance.BehaviorSmooth)
	case key.Matches(msg, a.keys.JumpItem):
		return a.openPrompt(ModeJumpItem), false
	case key.Matches(msg, a.keys.JumpIndex):
		return a.openPrompt(ModeJumpIndex), false
	case key.Matches(msg, a.keys.Overscan):
		a.opts.ShowOverscan = !a.opts.ShowOverscan
	case key.Matches(msg, a.keys.Stats):
		a.opts.ShowStats = !a.opts.ShowStats
		if a.opts.ShowStats {
			a.monitor.ResetAll()
		}
	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}
	return nil, false
}

func (a *App) openPrompt(mode ScreenModeType) tea.Cmd {
	a.mode = mode
	a.input.Reset()
	a.input.Prompt = mode.prompt()
	a.input.Placeholder = mode.placeholder()
	return a.input.Focus()
}

func (a *App) closePrompt() {
	a.mode = ModeList
	a.input.Blur()
	a.input.Reset()
}

// jump resolves a prompt query and scrolls the target to the top
func (a *App) jump(mode ScreenModeType, query string) tea.Cmd {
	if query == "" {
		return nil
	}

	switch mode {
	case ModeJumpIndex:
		line, err := strconv.Atoi(query)
		if err != nil {
			return a.setStatus(fmt.Sprintf("not a line number: %q", query), true)
		}
		index := min(max(line-1, 0), max(len(a.items)-1, 0))
		a.list.ScrollToIndex(index, performance.BehaviorSmooth)
		a.highlight = index
		return a.setStatus(fmt.Sprintf("line %d", index+1), false)

	case ModeJumpItem:
		index, err := a.list.ScrollToItem(items.Query(query), performance.BehaviorSmooth)
		if errors.Is(err, performance.ErrNotFound) {
			return a.setStatus(fmt.Sprintf("no item matches %q", query), true)
		}
		a.highlight = index
		return a.setStatus(fmt.Sprintf("found %q at line %d", query, index+1), false)
	}
	return nil
}

// View renders the application
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderBody())
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	output := b.String()

	if a.mode == ModeHelp {
		return a.overlayHelp(output)
	}
	return a.alert.Render(output)
}

// overlayHelp centers the help box over the list, or shows it alone when
// the terminal is too small to hold it
func (a *App) overlayHelp(base string) string {
	modal := a.helpView.View()
	if lipgloss.Width(modal) > a.width || lipgloss.Height(modal) > a.height {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return overlay.Composite(modal, base, overlay.Center, overlay.Center, 0, 0)
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf("%s  %d items", a.opts.Title, len(a.items))
	return a.styles.Header(a.width).Render(ansi.Truncate(title, a.width, "…"))
}

// renderBody draws only the manager's virtual items. The overscan debug view
// draws the whole render window from its first row, so the list appears
// shifted down by the leading overscan rows.
func (a *App) renderBody() string {
	rows := a.containerRows()
	if len(a.items) == 0 {
		empty := a.styles.Info().Render("(no items)")
		return empty + strings.Repeat("\n", rows-1)
	}

	itemHeight := a.opts.ItemHeight
	gutterWidth := len(strconv.Itoa(len(a.items))) + 1
	textWidth := max(a.width-gutterWidth, 1)

	lines := make([]string, 0, rows+2*a.list.Config().Overscan*itemHeight)
	skip := 0
	for _, vi := range a.list.VirtualItems() {
		if !vi.IsVisible && !a.opts.ShowOverscan {
			continue
		}
		if vi.IsVisible && len(lines) == 0 && !a.opts.ShowOverscan {
			// Partial first item when the offset is not item-aligned
			skip = int(a.list.ScrollOffset()) - int(vi.OffsetTop)
		}
		lines = append(lines, a.renderItem(vi, gutterWidth, textWidth)...)
	}

	if skip > 0 && skip < len(lines) {
		lines = lines[skip:]
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderItem returns the item's ItemHeight lines
func (a *App) renderItem(vi performance.VirtualItem, gutterWidth, textWidth int) []string {
	it, ok := a.list.Item(vi.Index)
	if !ok {
		return nil
	}

	selected := vi.Index == a.highlight
	gutter := a.styles.Gutter(gutterWidth).Render(strconv.Itoa(vi.Index + 1))
	text := ansi.Truncate(it.Text, textWidth-1, "…")
	row := a.styles.Row(vi.IsVisible, selected, textWidth)

	out := make([]string, a.opts.ItemHeight)
	out[0] = lipgloss.JoinHorizontal(lipgloss.Top, gutter, row.Render(text))
	blank := strings.Repeat(" ", gutterWidth)
	for i := 1; i < len(out); i++ {
		out[i] = blank + row.Render("")
	}
	return out
}

func (a *App) renderStatus() string {
	if a.mode == ModeJumpItem || a.mode == ModeJumpIndex {
		return a.input.View()
	}

	var parts []string
	w := a.list.Window()
	switch {
	case w.Empty():
		parts = append(parts, "empty")
	case a.opts.ShowOverscan:
		first, last := a.overscanShown(w)
		parts = append(parts, fmt.Sprintf("overscan view %d-%d of %d", first+1, last+1, len(a.items)))
	default:
		parts = append(parts, fmt.Sprintf("rows %d-%d of %d", w.VisibleStart+1, w.VisibleEnd+1, len(a.items)))
	}

	if a.status != "" {
		msg := a.styles.Info().Render(a.status)
		if a.statusErr {
			msg = a.styles.Error().Render(a.status)
		}
		parts = append(parts, msg)
	}

	if a.opts.ShowStats && !w.Empty() {
		parts = append(parts, fmt.Sprintf("render %d-%d (%d)", w.RenderStart+1, w.RenderEnd+1, w.Len()))
		fps := a.fps.FPS(a.now())
		fpsText := fmt.Sprintf("%.0f fps", fps)
		if fps > 0 && fps < 30 {
			fpsText = a.styles.Warning().Render(fpsText)
		}
		parts = append(parts, fpsText)
		if m := a.monitor.GetMetric(performance.MetricWindowCompute); m != nil {
			parts = append(parts, fmt.Sprintf("compute %s", m.RecentAverageTime(10)))
		}
	}

	line := ansi.Truncate(strings.Join(parts, " · "), a.width, "…")
	return a.styles.StatusBar(a.width).Render(line)
}

// overscanShown returns the item range the overscan debug view fits on
// screen, starting at the render window
func (a *App) overscanShown(w performance.Window) (int, int) {
	fit := (a.containerRows() + a.opts.ItemHeight - 1) / a.opts.ItemHeight
	return w.RenderStart, min(w.RenderEnd, w.RenderStart+fit-1)
}

func (a *App) renderFooter() string {
	return a.help.View(a.keys)
}

// Offset returns the host scroll position
func (a *App) Offset() float64 {
	return a.offset
}

// Window returns the window the list is currently rendering
func (a *App) Window() performance.Window {
	return a.list.Window()
}

// Monitor returns the timings of window recomputation
func (a *App) Monitor() *performance.PerformanceMonitor {
	return a.monitor
}
