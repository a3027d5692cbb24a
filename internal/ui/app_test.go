package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamStudy/vscroll/internal/components/performance"
	"github.com/HamStudy/vscroll/internal/items"
)

func TestAppInitialization(t *testing.T) {
	app, err := NewApp(items.Generate(10), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, ModeList, app.mode)
	assert.False(t, app.ready, "not ready until the window size is known")
	assert.Equal(t, "Loading...", app.View())
	assert.NotPanics(t, func() { app.Init() })
}

func TestAppRejectsBadItemHeight(t *testing.T) {
	opts := DefaultOptions()
	opts.ItemHeight = 0
	_, err := NewApp(items.Generate(10), opts)
	assert.Error(t, err)
}

func TestAppInitialWindow(t *testing.T) {
	app := createTestApp(t, 1000)

	// 24 rows minus chrome leaves 20 rows for items
	assert.Equal(t, 20, app.containerRows())
	assert.Equal(t, performance.Window{VisibleStart: 0, VisibleEnd: 20, RenderStart: 0, RenderEnd: 23}, app.Window())

	view := app.View()
	assert.Contains(t, view, "Row 1")
	assert.Contains(t, view, "Row 20")
	assert.NotContains(t, view, "Row 25")
	assert.Contains(t, view, "rows 1-21 of 1000")
	assert.Contains(t, view, "render 1-24 (24)")
}

func TestAppScrollWaitsForFrame(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, "j", "j", "j", "j", "j")
	assert.Equal(t, 5.0, app.Offset())
	assert.Equal(t, 0, app.Window().VisibleStart, "window must not move before the next frame")

	frame(app, 16*time.Millisecond)
	assert.Equal(t, 5, app.Window().VisibleStart)
	assert.Equal(t, 2, app.Window().RenderStart)
}

func TestAppCoalescesScrollBurst(t *testing.T) {
	app := createTestApp(t, 1000)
	before := app.monitor.GetMetric(performance.MetricWindowCompute).Count

	for i := 0; i < 50; i++ {
		press(app, "j")
	}
	frame(app, 16*time.Millisecond)

	after := app.monitor.GetMetric(performance.MetricWindowCompute).Count
	assert.Equal(t, before+1, after, "a burst of input must cost one recomputation")
	assert.Equal(t, 50, app.Window().VisibleStart)

	// Nothing pending, so no further frame is scheduled
	assert.False(t, app.ticking)
}

func TestAppScrollClamps(t *testing.T) {
	app := createTestApp(t, 100)

	press(app, "k")
	assert.Equal(t, 0.0, app.Offset())

	for i := 0; i < 10; i++ {
		press(app, "pgdown")
	}
	assert.Equal(t, 80.0, app.Offset(), "offset stops at total height minus viewport")

	frame(app, 16*time.Millisecond)
	w := app.Window()
	assert.Equal(t, 80, w.VisibleStart)
	assert.Equal(t, 99, w.VisibleEnd)
	assert.Contains(t, app.View(), "Row 100")
}

func TestAppHalfPage(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, "ctrl+d")
	assert.Equal(t, 10.0, app.Offset())
	press(app, "ctrl+u", "ctrl+u")
	assert.Equal(t, 0.0, app.Offset())
}

func TestAppMouseWheel(t *testing.T) {
	app := createTestApp(t, 1000)

	app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 3.0, app.Offset())
	app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0.0, app.Offset())
}

func TestAppSmoothScrollToBottom(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, "G")
	assert.True(t, app.scroll.Active())
	assert.Equal(t, 0.0, app.Offset(), "smooth scroll starts from the current position")

	frame(app, 50*time.Millisecond)
	mid := app.Offset()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 980.0)
	assert.True(t, app.ticking, "animation keeps the frame clock running")

	frame(app, time.Second)
	assert.False(t, app.scroll.Active())
	assert.Equal(t, 980.0, app.Offset())
	assert.Equal(t, 980, app.Window().VisibleStart)
	assert.Equal(t, 999, app.Window().VisibleEnd)

	press(app, "g")
	frame(app, 2*time.Second)
	assert.Equal(t, 0, app.Window().VisibleStart)
}

func TestAppKeyDuringSmoothScroll(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, "G")
	press(app, "k")
	assert.False(t, app.scroll.Active(), "manual input cancels the animation")
	assert.Equal(t, 979.0, app.Offset(), "relative scroll is based on the animation target")
}

func TestAppJumpToItem(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, "/")
	assert.Equal(t, ModeJumpItem, app.mode)

	press(app, "row 500")
	_, cmd := app.Update(keyMsg("enter"))
	assert.NotNil(t, cmd, "the jump result is shown as a toast")
	assert.Equal(t, ModeList, app.mode)
	assert.Equal(t, 499, app.highlight)
	assert.Contains(t, app.status, "line 500")

	frame(app, time.Second)
	assert.Equal(t, 499, app.Window().VisibleStart)
	assert.Contains(t, app.View(), "Row 500")
}

func TestAppJumpToMissingItem(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, "/", "nothing here", "enter")
	assert.True(t, app.statusErr)
	assert.Contains(t, app.status, "no item matches")
	assert.Equal(t, -1, app.highlight)
	assert.Equal(t, 0.0, app.Offset())
}

func TestAppJumpToLine(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, ":", "250", "enter")
	assert.Equal(t, 249, app.highlight)
	frame(app, time.Second)
	assert.True(t, app.Window().IsVisible(249))

	press(app, ":", "abc", "enter")
	assert.True(t, app.statusErr)

	press(app, ":", "99999", "enter")
	assert.Equal(t, 999, app.highlight, "line numbers are clamped to the list")
}

func TestAppPromptEscape(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, ":", "12", "esc")
	assert.Equal(t, ModeList, app.mode)
	assert.Equal(t, -1, app.highlight)
	assert.Equal(t, "", app.input.Value())
}

func TestAppHelpMode(t *testing.T) {
	app := createTestApp(t, 10)

	press(app, "?")
	assert.Equal(t, ModeHelp, app.mode)
	view := app.View()
	assert.Contains(t, view, "vscroll - Help")
	assert.Contains(t, view, "Row 1", "help is drawn over the list")

	press(app, "?")
	assert.Equal(t, ModeList, app.mode)
}

func TestAppToggles(t *testing.T) {
	app := createTestApp(t, 1000)

	assert.Contains(t, app.View(), "render 1-24")
	press(app, "s")
	assert.NotContains(t, app.View(), "render 1-24")

	press(app, "j", "j", "j", "j", "j")
	frame(app, 16*time.Millisecond)
	press(app, "o")
	assert.True(t, app.opts.ShowOverscan)
	// With overscan shown the body starts at the render window
	body := app.renderBody()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), "3"), "first drawn row should be line 3, got %q", body[:20])

	// The status line names the rows actually drawn, not the visible window
	view := app.View()
	assert.Contains(t, view, "overscan view 3-22 of 1000")
	assert.NotContains(t, view, "rows 6-26")
	assert.Contains(t, body, "Row 22")
	assert.NotContains(t, body, "Row 23")

	press(app, "o")
	assert.Contains(t, app.View(), "rows 6-26 of 1000")
}

func TestAppStatsToggleResetsMeasurements(t *testing.T) {
	app := createTestApp(t, 1000)
	press(app, "j")
	frame(app, 16*time.Millisecond)
	require.NotZero(t, app.monitor.GetMetric(performance.MetricWindowCompute).Count)

	press(app, "s", "s")
	assert.True(t, app.opts.ShowStats)
	assert.Zero(t, app.monitor.GetMetric(performance.MetricWindowCompute).Count)
}

func TestAppMonitorSummary(t *testing.T) {
	app := createTestApp(t, 1000)
	press(app, "j")
	frame(app, 16*time.Millisecond)

	summary := app.Monitor().GetSummary()
	require.Contains(t, summary, performance.MetricWindowCompute)
	entry := summary[performance.MetricWindowCompute].(map[string]interface{})
	assert.Equal(t, int64(2), entry["count"], "one compute on resize, one on the frame")
}

func TestAppJumpResultInStatusLine(t *testing.T) {
	app := createTestApp(t, 1000)

	press(app, ":", "250", "enter")
	assert.Contains(t, app.renderStatus(), "line 250")

	press(app, "/", "nothing here", "enter")
	assert.Contains(t, app.renderStatus(), "no item matches")

	press(app, "j")
	assert.Empty(t, app.status, "manual scrolling clears the jump result")
	assert.NotContains(t, app.renderStatus(), "no item matches")
}

func TestAppResizeKeepsToastsOnSameWidth(t *testing.T) {
	app := createTestApp(t, 100)
	assert.Equal(t, 80, app.alertWidth)

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, 80, app.alertWidth)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 120, app.alertWidth)
}

func TestAppEasingOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Easing = EasingLinear
	app := createTestAppWithOptions(t, items.Generate(1000), opts)

	press(app, "G")
	frame(app, 90*time.Millisecond)
	// Halfway through a linear 180ms scroll to 980
	assert.InDelta(t, 490.0, app.Offset(), 1e-6)

	opts.Easing = "bounce"
	_, err := NewApp(items.Generate(10), opts)
	assert.NoError(t, err, "unknown easing falls back to the default")
}

func TestAppResizeClampsOffset(t *testing.T) {
	app := createTestApp(t, 100)

	press(app, "G")
	frame(app, time.Second)
	assert.Equal(t, 80.0, app.Offset())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 44})
	assert.Equal(t, 60.0, app.Offset())
	assert.Equal(t, 60, app.Window().VisibleStart)
}

func TestAppEmptyList(t *testing.T) {
	app := createTestApp(t, 0)

	assert.True(t, app.Window().Empty())
	view := app.View()
	assert.Contains(t, view, "(no items)")
	assert.Contains(t, view, "empty")

	press(app, "G", "j")
	assert.Equal(t, 0.0, app.Offset())
}

func TestAppTallItems(t *testing.T) {
	opts := DefaultOptions()
	opts.ItemHeight = 2
	app := createTestAppWithOptions(t, items.Generate(100), opts)

	// 20 rows hold 10 two-row items
	assert.Equal(t, performance.Window{VisibleStart: 0, VisibleEnd: 10, RenderStart: 0, RenderEnd: 13}, app.Window())

	press(app, "j")
	assert.Equal(t, 2.0, app.Offset())

	press(app, ":", "10", "enter")
	frame(app, time.Second)
	assert.Equal(t, 18.0, app.Offset())
	assert.Equal(t, 9, app.Window().VisibleStart)
}

func TestAppQuit(t *testing.T) {
	app := createTestApp(t, 10)

	_, cmd := app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
