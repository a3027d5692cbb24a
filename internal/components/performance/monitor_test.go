package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceMonitorRecord(t *testing.T) {
	pm := NewPerformanceMonitor()

	pm.RecordDuration(MetricWindowCompute, 3*time.Millisecond)
	pm.RecordDuration(MetricWindowCompute, 1*time.Millisecond)
	pm.RecordDuration(MetricWindowCompute, 2*time.Millisecond)

	m := pm.GetMetric(MetricWindowCompute)
	require.NotNil(t, m)
	assert.Equal(t, int64(3), m.Count)
	assert.Equal(t, time.Millisecond, m.MinTime)
	assert.Equal(t, 3*time.Millisecond, m.MaxTime)
	assert.Equal(t, 2*time.Millisecond, m.LastTime)
	assert.Equal(t, 2*time.Millisecond, m.AverageTime())
	assert.Equal(t, 1500*time.Microsecond, m.RecentAverageTime(2))

	assert.Nil(t, pm.GetMetric("unknown"))
}

func TestPerformanceMonitorSampleCap(t *testing.T) {
	pm := NewPerformanceMonitor()
	for i := 1; i <= 150; i++ {
		pm.RecordDuration("frame", time.Duration(i))
	}

	m := pm.GetMetric("frame")
	require.Len(t, m.Samples, 100)
	assert.Equal(t, time.Duration(51), m.Samples[0])
	assert.Equal(t, time.Duration(150), m.Samples[99])
}

func TestPerformanceMonitorCopies(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.RecordDuration("frame", time.Millisecond)

	m := pm.GetMetric("frame")
	m.Samples[0] = time.Hour

	assert.Equal(t, time.Millisecond, pm.GetMetric("frame").Samples[0])
}

func TestPerformanceMonitorResetAll(t *testing.T) {
	pm := NewPerformanceMonitor()
	done := pm.StartTimer(MetricWindowCompute)
	done()
	pm.RecordDuration("frame", time.Millisecond)

	pm.ResetAll()
	assert.Equal(t, int64(0), pm.GetMetric(MetricWindowCompute).Count)
	assert.Equal(t, int64(0), pm.GetMetric("frame").Count)
	assert.Empty(t, pm.GetMetric("frame").Samples)

	pm.RecordDuration("frame", 2*time.Millisecond)
	assert.Equal(t, 2*time.Millisecond, pm.GetMetric("frame").MinTime, "min restarts after a reset")
}

func TestPerformanceMonitorSummary(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.RecordDuration(MetricWindowCompute, 2*time.Millisecond)
	pm.RecordDuration(MetricWindowCompute, 4*time.Millisecond)

	summary := pm.GetSummary()
	require.Contains(t, summary, MetricWindowCompute)

	entry, ok := summary[MetricWindowCompute].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(2), entry["count"])
	assert.Equal(t, 3*time.Millisecond, entry["average_time"])
	assert.Equal(t, 4*time.Millisecond, entry["max_time"])
}

func TestFPSCounter(t *testing.T) {
	c := NewFPSCounter(time.Second)
	start := time.Unix(1000, 0)

	assert.Equal(t, 0.0, c.FPS(start))

	for i := 0; i <= 30; i++ {
		c.Frame(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	now := start.Add(600 * time.Millisecond)
	assert.InDelta(t, 50.0, c.FPS(now), 0.01)

	// Everything ages out of the window
	assert.Equal(t, 0.0, c.FPS(now.Add(5*time.Second)))
}
