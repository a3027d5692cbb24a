package ui

import (
	"time"
)

// EasingFunction maps linear progress in [0,1] to eased progress
type EasingFunction func(t float64) float64

// Easing names accepted in the config file
const (
	EasingLinear     = "linear"
	EasingOutCubic   = "out-cubic"
	EasingInOutCubic = "in-out-cubic"
)

// EasingByName returns the named easing. Unknown names yield EaseOutCubic
// and false.
func EasingByName(name string) (EasingFunction, bool) {
	switch name {
	case EasingLinear:
		return Linear, true
	case "", EasingOutCubic:
		return EaseOutCubic, true
	case EasingInOutCubic:
		return EaseInOutCubic, true
	}
	return EaseOutCubic, false
}

func Linear(t float64) float64 {
	return t
}

func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	t = 2*t - 2
	return 1 + t*t*t/2
}

// ScrollAnimation interpolates a scroll offset for smooth scrolling.
// It is advanced by the host's frame ticks.
type ScrollAnimation struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	easing   EasingFunction
	active   bool
}

// NewScrollAnimation creates an idle animation
func NewScrollAnimation(duration time.Duration, easing EasingFunction) *ScrollAnimation {
	if easing == nil {
		easing = EaseOutCubic
	}
	return &ScrollAnimation{duration: duration, easing: easing}
}

// Start begins animating from one offset to another. A running animation
// is replaced.
func (s *ScrollAnimation) Start(from, to float64, now time.Time) {
	s.from = from
	s.to = to
	s.start = now
	s.active = s.duration > 0 && from != to
}

// Step returns the offset at now and whether the animation has finished
func (s *ScrollAnimation) Step(now time.Time) (float64, bool) {
	if !s.active {
		return s.to, true
	}

	elapsed := now.Sub(s.start)
	if elapsed >= s.duration {
		s.active = false
		return s.to, true
	}

	progress := float64(elapsed) / float64(s.duration)
	if progress < 0 {
		progress = 0
	}
	return s.from + (s.to-s.from)*s.easing(progress), false
}

// Target returns the offset the animation is heading to
func (s *ScrollAnimation) Target() float64 {
	return s.to
}

// Stop abandons the animation where it is
func (s *ScrollAnimation) Stop() {
	s.active = false
}

// Active returns whether the animation is running
func (s *ScrollAnimation) Active() bool {
	return s.active
}
