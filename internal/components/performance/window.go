package performance

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// DefaultOverscan is the number of extra items rendered on each side of the
// visible window when no overscan is configured.
const DefaultOverscan = 3

var (
	// ErrInvalidConfig is matched by every *ConfigurationError.
	ErrInvalidConfig = errors.New("invalid list configuration")

	// ErrNotFound is returned when a scroll target does not resolve to an item.
	ErrNotFound = errors.New("item not found")
)

// ConfigurationError reports a list configuration that makes index math undefined
type ConfigurationError struct {
	Field string
	Value float64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid list configuration: %s must be a positive number, got %v", e.Field, e.Value)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Config describes a list of uniformly sized items and the viewport over it
type Config struct {
	ItemHeight      float64
	ContainerHeight float64
	Overscan        int
	ItemCount       int
}

// DefaultConfig returns a configuration with the default overscan
func DefaultConfig(itemHeight, containerHeight float64, itemCount int) Config {
	return Config{
		ItemHeight:      itemHeight,
		ContainerHeight: containerHeight,
		Overscan:        DefaultOverscan,
		ItemCount:       itemCount,
	}
}

// Validate reports non-positive heights and clamps negative counts to zero.
func (c *Config) Validate() error {
	if !positive(c.ItemHeight) {
		return &ConfigurationError{Field: "itemHeight", Value: c.ItemHeight}
	}
	if !positive(c.ContainerHeight) {
		return &ConfigurationError{Field: "containerHeight", Value: c.ContainerHeight}
	}
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if c.ItemCount < 0 {
		c.ItemCount = 0
	}
	return nil
}

// TotalHeight returns the height of the whole list
func (c Config) TotalHeight() float64 {
	return float64(c.ItemCount) * c.ItemHeight
}

// MaxScrollOffset returns the largest offset that still fills the viewport
func (c Config) MaxScrollOffset() float64 {
	return math.Max(0, c.TotalHeight()-c.ContainerHeight)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Window holds the visible and render index ranges. Both ranges are inclusive.
type Window struct {
	VisibleStart int
	VisibleEnd   int
	RenderStart  int
	RenderEnd    int
}

var emptyWindow = Window{VisibleStart: 0, VisibleEnd: -1, RenderStart: 0, RenderEnd: -1}

// Empty returns true if no item should be rendered
func (w Window) Empty() bool {
	return w.RenderEnd < w.RenderStart
}

// Len returns the number of items in the render window
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return w.RenderEnd - w.RenderStart + 1
}

// IsVisible returns whether index falls in the visible window
func (w Window) IsVisible(index int) bool {
	return index >= w.VisibleStart && index <= w.VisibleEnd
}

// OffsetY returns the height of the spacer before the first rendered item
func (w Window) OffsetY(itemHeight float64) float64 {
	if w.Empty() {
		return 0
	}
	return float64(w.RenderStart) * itemHeight
}

func (w Window) String() string {
	if w.Empty() {
		return "empty"
	}
	return fmt.Sprintf("visible=[%d,%d] render=[%d,%d]", w.VisibleStart, w.VisibleEnd, w.RenderStart, w.RenderEnd)
}

// ComputeWindow calculates the visible and render windows for scrollOffset.
// cfg must have passed Validate. Offsets outside [0, MaxScrollOffset] are clamped.
func ComputeWindow(cfg Config, scrollOffset float64) Window {
	if cfg.ItemCount <= 0 || !positive(cfg.ItemHeight) || !positive(cfg.ContainerHeight) {
		return emptyWindow
	}

	if math.IsNaN(scrollOffset) || scrollOffset < 0 {
		scrollOffset = 0
	}
	if maxOffset := cfg.MaxScrollOffset(); scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}

	last := cfg.ItemCount - 1
	overscan := max(cfg.Overscan, 0)

	// Ratios are clamped as floats; converting an out-of-range float to int
	// is undefined.
	visibleStart := clampIndex(math.Floor(scrollOffset/cfg.ItemHeight), last)
	visibleEnd := visibleStart + clampIndex(math.Ceil(cfg.ContainerHeight/cfg.ItemHeight), last-visibleStart)

	w := Window{
		VisibleStart: visibleStart,
		VisibleEnd:   visibleEnd,
		RenderStart:  0,
		RenderEnd:    last,
	}
	if overscan < visibleStart {
		w.RenderStart = visibleStart - overscan
	}
	if overscan < last-visibleEnd {
		w.RenderEnd = visibleEnd + overscan
	}
	return w
}

// clampIndex converts v to an int in [0, limit]. NaN maps to 0.
func clampIndex(v float64, limit int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float64(limit) {
		return limit
	}
	return min(int(v), limit)
}

// VirtualItem is one materialized row of the render window
type VirtualItem struct {
	Index     int
	OffsetTop float64
	IsVisible bool
}

// ListVirtualItems appends one VirtualItem per render-window index to buf[:0].
func ListVirtualItems(w Window, itemHeight float64, buf []VirtualItem) []VirtualItem {
	items := buf[:0]
	if w.Empty() {
		return items
	}
	for i := w.RenderStart; i <= w.RenderEnd; i++ {
		items = append(items, VirtualItem{
			Index:     i,
			OffsetTop: float64(i) * itemHeight,
			IsVisible: w.IsVisible(i),
		})
	}
	return items
}

// ScrollTarget returns the offset that puts index at the top of the viewport
func ScrollTarget(index int, itemHeight float64) float64 {
	return float64(index) * itemHeight
}

// Identifier is implemented by items that carry a stable identity
type Identifier interface {
	ID() string
}

// ResolveIndex returns the index of the first item equal to target.
// A nil equal falls back to DefaultEqual. The scan is linear in len(items).
func ResolveIndex[T any](items []T, target T, equal func(a, b T) bool) (int, bool) {
	if equal == nil {
		equal = DefaultEqual[T]
	}
	for i, item := range items {
		if equal(item, target) {
			return i, true
		}
	}
	return -1, false
}

// DefaultEqual compares by ID when both values implement Identifier and
// with == otherwise. Values of non-comparable types are never equal.
func DefaultEqual[T any](a, b T) bool {
	ai, aok := any(a).(Identifier)
	bi, bok := any(b).(Identifier)
	if aok && bok {
		return ai.ID() == bi.ID()
	}

	av, bv := reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	if !av.IsValid() || !bv.IsValid() {
		return !av.IsValid() && !bv.IsValid()
	}
	if !av.Comparable() || !bv.Comparable() {
		return false
	}
	return any(a) == any(b)
}
