package performance

import (
	"sync"
	"time"
)

// MetricWindowCompute times one window recomputation in the list host
const MetricWindowCompute = "window_compute"

// PerformanceMonitor tracks named duration metrics
type PerformanceMonitor struct {
	metrics    map[string]*Metric
	maxSamples int
	mutex      sync.RWMutex
}

// Metric represents a performance metric
type Metric struct {
	Name        string
	Count       int64
	TotalTime   time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
	LastTime    time.Duration
	LastUpdated time.Time
	Samples     []time.Duration
	MaxSamples  int
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		metrics:    make(map[string]*Metric),
		maxSamples: 100,
	}
}

// StartTimer starts timing an operation; call the returned func to record it
func (pm *PerformanceMonitor) StartTimer(name string) func() {
	start := time.Now()
	return func() {
		pm.RecordDuration(name, time.Since(start))
	}
}

// RecordDuration records a duration for a metric
func (pm *PerformanceMonitor) RecordDuration(name string, duration time.Duration) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	metric, exists := pm.metrics[name]
	if !exists {
		metric = &Metric{
			Name:       name,
			MinTime:    duration,
			MaxTime:    duration,
			MaxSamples: pm.maxSamples,
			Samples:    make([]time.Duration, 0, pm.maxSamples),
		}
		pm.metrics[name] = metric
	}

	metric.Count++
	metric.TotalTime += duration
	metric.LastTime = duration
	metric.LastUpdated = time.Now()

	if duration < metric.MinTime || metric.Count == 1 {
		metric.MinTime = duration
	}
	if duration > metric.MaxTime {
		metric.MaxTime = duration
	}

	if len(metric.Samples) >= metric.MaxSamples {
		copy(metric.Samples, metric.Samples[1:])
		metric.Samples = metric.Samples[:len(metric.Samples)-1]
	}
	metric.Samples = append(metric.Samples, duration)
}

// GetMetric returns a copy of a metric, or nil if nothing was recorded
func (pm *PerformanceMonitor) GetMetric(name string) *Metric {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	metric, exists := pm.metrics[name]
	if !exists {
		return nil
	}
	return metric.clone()
}

// GetAllMetrics returns copies of all metrics
func (pm *PerformanceMonitor) GetAllMetrics() map[string]*Metric {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	result := make(map[string]*Metric, len(pm.metrics))
	for name, metric := range pm.metrics {
		result[name] = metric.clone()
	}
	return result
}

func (m *Metric) clone() *Metric {
	c := *m
	c.Samples = append([]time.Duration(nil), m.Samples...)
	return &c
}

// AverageTime returns the average time for a metric
func (m *Metric) AverageTime() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.TotalTime / time.Duration(m.Count)
}

// RecentAverageTime returns the average of the last sampleCount samples
func (m *Metric) RecentAverageTime(sampleCount int) time.Duration {
	if len(m.Samples) == 0 || sampleCount <= 0 {
		return 0
	}

	start := max(len(m.Samples)-sampleCount, 0)
	var total time.Duration
	for _, s := range m.Samples[start:] {
		total += s
	}
	return total / time.Duration(len(m.Samples)-start)
}

// ResetAll resets all metrics
func (pm *PerformanceMonitor) ResetAll() {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	for _, metric := range pm.metrics {
		metric.reset()
	}
}

func (m *Metric) reset() {
	m.Count = 0
	m.TotalTime = 0
	m.MinTime = 0
	m.MaxTime = 0
	m.LastTime = 0
	m.Samples = m.Samples[:0]
}

// GetSummary returns a performance summary
func (pm *PerformanceMonitor) GetSummary() map[string]interface{} {
	metrics := pm.GetAllMetrics()
	summary := make(map[string]interface{}, len(metrics))

	for name, metric := range metrics {
		summary[name] = map[string]interface{}{
			"count":        metric.Count,
			"total_time":   metric.TotalTime,
			"average_time": metric.AverageTime(),
			"min_time":     metric.MinTime,
			"max_time":     metric.MaxTime,
			"last_time":    metric.LastTime,
			"last_updated": metric.LastUpdated,
			"recent_avg":   metric.RecentAverageTime(10),
		}
	}

	return summary
}

// FPSCounter estimates frames per second over a sliding time window
type FPSCounter struct {
	window time.Duration
	frames []time.Time
	mutex  sync.Mutex
}

// NewFPSCounter creates a counter that averages over window
func NewFPSCounter(window time.Duration) *FPSCounter {
	if window <= 0 {
		window = time.Second
	}
	return &FPSCounter{window: window}
}

// Frame records a frame at time t
func (c *FPSCounter) Frame(t time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.frames = append(c.frames, t)
	c.trim(t)
}

// FPS returns the frame rate observed in the window ending at now
func (c *FPSCounter) FPS(now time.Time) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.trim(now)
	if len(c.frames) < 2 {
		return 0
	}
	span := c.frames[len(c.frames)-1].Sub(c.frames[0])
	if span <= 0 {
		return 0
	}
	return float64(len(c.frames)-1) / span.Seconds()
}

// trim drops frames older than the window
func (c *FPSCounter) trim(now time.Time) {
	cutoff := now.Add(-c.window)
	drop := 0
	for drop < len(c.frames) && c.frames[drop].Before(cutoff) {
		drop++
	}
	if drop > 0 {
		c.frames = append(c.frames[:0], c.frames[drop:]...)
	}
}
