package performance

import (
	"sync"
	"time"
)

// DefaultFrameInterval is one frame at 60 Hz
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler coalesces bursts of scroll offsets into at most one
// callback per frame. The callback always receives the latest offset.
type FrameScheduler struct {
	interval time.Duration
	timer    *time.Timer
	callback func(offset float64)
	mutex    sync.Mutex
	pending  bool
	offset   float64
}

// NewFrameScheduler creates a new frame scheduler with the specified interval
func NewFrameScheduler(interval time.Duration, callback func(offset float64)) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{
		interval: interval,
		callback: callback,
	}
}

// Submit records offset and arms the frame timer if it is not already armed
func (fs *FrameScheduler) Submit(offset float64) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	fs.offset = offset
	if fs.pending {
		return
	}
	fs.pending = true
	fs.timer = time.AfterFunc(fs.interval, fs.fire)
}

func (fs *FrameScheduler) fire() {
	fs.mutex.Lock()
	if !fs.pending {
		fs.mutex.Unlock()
		return
	}
	fs.pending = false
	fs.timer = nil
	offset := fs.offset
	callback := fs.callback
	fs.mutex.Unlock()

	// Run outside the lock so the callback may Submit again.
	if callback != nil {
		callback(offset)
	}
}

// Flush delivers the pending offset immediately. It returns false if
// nothing was pending.
func (fs *FrameScheduler) Flush() bool {
	fs.mutex.Lock()
	if !fs.pending {
		fs.mutex.Unlock()
		return false
	}
	if fs.timer != nil {
		fs.timer.Stop()
		fs.timer = nil
	}
	fs.mutex.Unlock()

	fs.fire()
	return true
}

// Cancel drops any pending offset
func (fs *FrameScheduler) Cancel() {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	fs.pending = false
	if fs.timer != nil {
		fs.timer.Stop()
		fs.timer = nil
	}
}

// IsPending returns whether an offset is waiting for the next frame
func (fs *FrameScheduler) IsPending() bool {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return fs.pending
}

// SetInterval updates the frame interval for the next armed frame
func (fs *FrameScheduler) SetInterval(interval time.Duration) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if interval > 0 {
		fs.interval = interval
	}
}

// FrameGate is the clockless form of FrameScheduler for hosts that own a
// frame tick. Submit keeps the latest offset; Take hands it out once.
type FrameGate struct {
	pending bool
	offset  float64
}

// Submit records offset for the next frame
func (g *FrameGate) Submit(offset float64) {
	g.offset = offset
	g.pending = true
}

// Take returns the pending offset, if any, and clears it
func (g *FrameGate) Take() (float64, bool) {
	if !g.pending {
		return 0, false
	}
	g.pending = false
	return g.offset, true
}

// Pending returns whether an offset is waiting
func (g *FrameGate) Pending() bool {
	return g.pending
}

// Cancel drops the pending offset
func (g *FrameGate) Cancel() {
	g.pending = false
}
