package performance

import (
	"fmt"
)

// Behavior selects how the host scroll primitive moves to a target offset
type Behavior string

const (
	BehaviorSmooth  Behavior = "smooth"
	BehaviorInstant Behavior = "instant"
)

// Scroller is the host's scroll primitive
type Scroller interface {
	ScrollTo(offset float64, behavior Behavior)
}

// ScrollerFunc adapts a function to the Scroller interface
type ScrollerFunc func(offset float64, behavior Behavior)

func (f ScrollerFunc) ScrollTo(offset float64, behavior Behavior) {
	f(offset, behavior)
}

// ViewportManager handles viewport-based virtualization for large datasets.
// It is driven from a single goroutine, typically the host's update loop.
type ViewportManager[T any] struct {
	config   Config
	scroller Scroller

	// Data management
	items []T
	equal func(a, b T) bool

	// Derived state
	scrollOffset float64
	computed     bool
	window       Window
	virtual      []VirtualItem

	// Callbacks
	onWindowChange func(Window)
}

// NewViewportManager creates a new viewport manager
func NewViewportManager[T any](cfg Config, scroller Scroller) (*ViewportManager[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vm := &ViewportManager[T]{
		config:   cfg,
		scroller: scroller,
	}
	vm.recompute()
	return vm, nil
}

// Configure replaces the list configuration and recomputes the window.
// The previous configuration stays in effect when cfg is invalid.
func (vm *ViewportManager[T]) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if vm.items != nil {
		cfg.ItemCount = len(vm.items)
	}
	vm.config = cfg
	vm.recompute()
	return nil
}

// SetItems attaches the item sequence; ItemCount follows its length
func (vm *ViewportManager[T]) SetItems(items []T) {
	vm.items = items
	vm.config.ItemCount = len(items)
	vm.recompute()
}

// SetContainerHeight updates the viewport height
func (vm *ViewportManager[T]) SetContainerHeight(height float64) error {
	cfg := vm.config
	cfg.ContainerHeight = height
	return vm.Configure(cfg)
}

// SetEquality sets the comparison used by ScrollToItem
func (vm *ViewportManager[T]) SetEquality(equal func(a, b T) bool) {
	vm.equal = equal
}

// SetScroller replaces the host scroll primitive
func (vm *ViewportManager[T]) SetScroller(s Scroller) {
	vm.scroller = s
}

// OnScroll records a new scroll offset. It returns false without
// recomputing when the offset has not changed.
func (vm *ViewportManager[T]) OnScroll(offset float64) bool {
	if vm.computed && offset == vm.scrollOffset {
		return false
	}
	vm.scrollOffset = offset
	vm.recompute()
	return true
}

// recompute derives the window and virtual items from the current state
func (vm *ViewportManager[T]) recompute() {
	prev, hadWindow := vm.window, vm.computed

	vm.window = ComputeWindow(vm.config, vm.scrollOffset)
	vm.virtual = ListVirtualItems(vm.window, vm.config.ItemHeight, vm.virtual)
	vm.computed = true

	if vm.onWindowChange != nil && (!hadWindow || prev != vm.window) {
		vm.onWindowChange(vm.window)
	}
}

// Window returns the current visible and render windows
func (vm *ViewportManager[T]) Window() Window {
	return vm.window
}

// VirtualItems returns the items to render. The slice is reused by the
// next recomputation.
func (vm *ViewportManager[T]) VirtualItems() []VirtualItem {
	return vm.virtual
}

// TotalHeight returns the height of the whole list
func (vm *ViewportManager[T]) TotalHeight() float64 {
	return vm.config.TotalHeight()
}

// OffsetY returns the spacer height before the first rendered item
func (vm *ViewportManager[T]) OffsetY() float64 {
	return vm.window.OffsetY(vm.config.ItemHeight)
}

// ScrollOffset returns the last offset passed to OnScroll
func (vm *ViewportManager[T]) ScrollOffset() float64 {
	return vm.scrollOffset
}

// MaxScrollOffset returns the largest useful scroll offset
func (vm *ViewportManager[T]) MaxScrollOffset() float64 {
	return vm.config.MaxScrollOffset()
}

// Config returns the active configuration
func (vm *ViewportManager[T]) Config() Config {
	return vm.config
}

// Item returns the attached item at index
func (vm *ViewportManager[T]) Item(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(vm.items) {
		return zero, false
	}
	return vm.items[index], true
}

// ScrollToIndex asks the host to scroll index to the top of the viewport
func (vm *ViewportManager[T]) ScrollToIndex(index int, behavior Behavior) float64 {
	target := ScrollTarget(index, vm.config.ItemHeight)
	if vm.scroller != nil {
		vm.scroller.ScrollTo(target, behavior)
	}
	return target
}

// ScrollToItem resolves target to an index and scrolls to it
func (vm *ViewportManager[T]) ScrollToItem(target T, behavior Behavior) (int, error) {
	index, ok := ResolveIndex(vm.items, target, vm.equal)
	if !ok {
		return -1, fmt.Errorf("scroll to item: %w", ErrNotFound)
	}
	vm.ScrollToIndex(index, behavior)
	return index, nil
}

// SetOnWindowChange sets the window change callback
func (vm *ViewportManager[T]) SetOnWindowChange(callback func(Window)) {
	vm.onWindowChange = callback
}

// GetStats returns a snapshot of the viewport state
func (vm *ViewportManager[T]) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"total_items":      vm.config.ItemCount,
		"item_height":      vm.config.ItemHeight,
		"container_height": vm.config.ContainerHeight,
		"overscan":         vm.config.Overscan,
		"scroll_offset":    vm.scrollOffset,
		"visible_start":    vm.window.VisibleStart,
		"visible_end":      vm.window.VisibleEnd,
		"render_start":     vm.window.RenderStart,
		"render_end":       vm.window.RenderEnd,
		"rendered":         vm.window.Len(),
		"total_height":     vm.TotalHeight(),
	}
}
